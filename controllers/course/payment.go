package controllers

import (
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	courseModels "elearn/models/course"
	"elearn/utils"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Gateway calls are indirected through package variables so tests can stub
// the external provider.
var (
	createCheckoutSession = utils.CreateCheckoutSession
	checkPaymentStatus    = utils.CheckPaymentStatus
)

// Checkout opens a hosted checkout session for a course purchase. The
// (user, course) binding lives in the PENDING payment row keyed by order id.
func Checkout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if isSubscribed(database.Database.Db, userID, course.ID) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You already have this course!", nil)
	}

	orderID := fmt.Sprintf("order-%s", uuid.NewString())

	payment := courseModels.Payment{
		OrderID:  orderID,
		UserID:   userID,
		CourseID: course.ID,
		Amount:   course.Price,
		Status:   courseModels.PaymentStatusPending,
	}
	if err := database.Database.Db.Create(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create payment record!", nil)
	}

	session, err := createCheckoutSession(orderID, course.Price, course.Title, user.Name, user.Email)
	if err != nil {
		log.Printf("Error creating checkout session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create checkout session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session created!", fiber.Map{
		"id":  session.ID,
		"url": session.URL,
	})
}

// finalizeEnrollment converts a paid session into durable access exactly once.
// The compare-and-set on the payment row is the idempotency guard: only the
// request that flips PENDING to COMPLETED creates the subscription and the
// empty progress record, and all three writes share one transaction. The bool
// reports whether this call performed the transition, so callers can keep
// one-shot side effects off the replay path.
func finalizeEnrollment(db *gorm.DB, orderID, gatewayRef string) (*courseModels.Payment, bool, error) {
	var payment courseModels.Payment
	if err := db.Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		return nil, false, err
	}

	finalized := false
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&courseModels.Payment{}).
			Where("id = ? AND status = ?", payment.ID, courseModels.PaymentStatusPending).
			Updates(map[string]interface{}{
				"status":            courseModels.PaymentStatusCompleted,
				"gateway_reference": gatewayRef,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Replay of an already finalized session
			return nil
		}
		finalized = true

		sub := courseModels.Subscription{UserID: payment.UserID, CourseID: payment.CourseID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&sub).Error; err != nil {
			return err
		}

		progress := courseModels.Progress{UserID: payment.UserID, CourseID: payment.CourseID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&progress).Error
	})
	if err != nil {
		return nil, false, err
	}

	return &payment, finalized, nil
}

// PaymentVerification confirms a checkout session with the gateway and
// finalizes enrollment. Safe to call repeatedly with the same session id.
func PaymentVerification(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sessionID := c.Locals("sessionID").(string)

	confirmation, err := checkPaymentStatus(sessionID)
	if err != nil {
		log.Printf("Error checking payment status: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify payment with gateway!", nil)
	}

	if !confirmation.Paid {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment failed!", nil)
	}

	payment, finalized, err := finalizeEnrollment(database.Database.Db, sessionID, confirmation.TransactionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unknown payment session!", nil)
		}
		log.Printf("Error finalizing enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to finalize enrollment!", nil)
	}

	if finalized {
		utils.RecordActivity(payment.UserID, models.ActivityEnrollment, payment.OrderID)
		sendPurchaseMail(payment)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course purchased successfully!", nil)
}

// PaymentWebhook handles the gateway's asynchronous notification. It shares
// the finalization path with client-side verification, so retries are no-ops.
func PaymentWebhook(c *fiber.Ctx) error {
	notif := new(struct {
		OrderID           string `json:"order_id"`
		StatusCode        string `json:"status_code"`
		GrossAmount       string `json:"gross_amount"`
		SignatureKey      string `json:"signature_key"`
		TransactionStatus string `json:"transaction_status"`
		FraudStatus       string `json:"fraud_status"`
		TransactionID     string `json:"transaction_id"`
	})
	if err := c.BodyParser(notif); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid payload!", nil)
	}

	if !utils.VerifyWebhookSignature(notif.OrderID, notif.StatusCode, notif.GrossAmount, notif.SignatureKey) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid signature!", nil)
	}

	paid := notif.TransactionStatus == "settlement" ||
		(notif.TransactionStatus == "capture" && notif.FraudStatus == "accept")
	if !paid {
		// Nothing to do for pending/failed notifications
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification ignored.", nil)
	}

	payment, finalized, err := finalizeEnrollment(database.Database.Db, notif.OrderID, notif.TransactionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// Answer 200 so the gateway stops retrying an unknown order
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Unknown order, ignored.", nil)
		}
		log.Printf("Error finalizing enrollment from webhook: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to finalize enrollment!", nil)
	}

	if finalized {
		utils.RecordActivity(payment.UserID, models.ActivityEnrollment, payment.OrderID)
		sendPurchaseMail(payment)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification processed.", nil)
}

// PaymentSuccess is the post-redirect fast path: it grants access on the
// caller's say-so without a gateway check. Note this trusts the client;
// paid flows should land on /payment/verification or the webhook instead.
// The grant itself is idempotent.
func PaymentSuccess(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		sub := courseModels.Subscription{UserID: userID, CourseID: course.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&sub).Error; err != nil {
			return err
		}
		progress := courseModels.Progress{UserID: userID, CourseID: course.ID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&progress).Error
	})
	if err != nil {
		log.Printf("Error granting course access: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course added to your profile!", nil)
}

func sendPurchaseMail(payment *courseModels.Payment) {
	var user models.User
	var course courseModels.Course
	db := database.Database.Db

	if err := db.First(&user, payment.UserID).Error; err != nil {
		return
	}
	if err := db.First(&course, payment.CourseID).Error; err != nil {
		return
	}
	utils.SendPurchaseEmail(user.Email, user.Name, course.Title)
}
