package chatController

import (
	"bytes"
	"elearn/config"
	"elearn/middleware"
	courseValidators "elearn/validators/course"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func newChatApp() *fiber.App {
	app := fiber.New()
	app.Post("/chat", middleware.JWTMiddleware, courseValidators.ChatRequest(), ChatCompletion)
	return app
}

func doChatRequest(t *testing.T, app *fiber.App, message string) *http.Response {
	t.Helper()

	payload, err := json.Marshal(fiber.Map{"message": message})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	token, err := middleware.GenerateJWT(1)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestChatCompletion_ReturnsReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"Use channels to share memory."}}]}`))
	}))
	defer server.Close()

	config.AppConfig = &config.Config{
		JWTKey:     "test-jwt-key",
		ChatApiUrl: server.URL,
		ChatApiKey: "test-chat-key",
		ChatModel:  "test-model",
	}

	app := newChatApp()
	resp := doChatRequest(t, app, "How do goroutines communicate?")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data := body["data"].(map[string]interface{})
	require.Equal(t, "Use channels to share memory.", data["reply"])
}

func TestChatCompletion_UpstreamFailureIsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	config.AppConfig = &config.Config{
		JWTKey:     "test-jwt-key",
		ChatApiUrl: server.URL,
		ChatApiKey: "test-chat-key",
	}

	app := newChatApp()
	resp := doChatRequest(t, app, "hello")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
