package chatController

import (
	"elearn/middleware"
	"elearn/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ChatCompletion forwards a learner's question to the tutoring assistant and
// returns the reply. The upstream call is synchronous; a provider failure is
// reported as a 500 like other dependency failures.
func ChatCompletion(c *fiber.Ctx) error {
	_, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	message := c.Locals("chatMessage").(string)

	reply, err := utils.CompleteChat(message)
	if err != nil {
		log.Printf("Error from chat provider: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Assistant is unavailable right now!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reply generated.", fiber.Map{
		"reply": reply,
	})
}
