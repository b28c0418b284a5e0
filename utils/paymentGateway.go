package utils

import (
	"crypto/sha512"
	"elearn/config"
	"encoding/hex"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

var (
	snapClient snap.Client
	coreClient coreapi.Client
)

// InitPaymentGateway initializes the hosted-checkout clients with the server key.
func InitPaymentGateway() {
	env := midtrans.Sandbox
	if config.AppConfig.MidtransEnv == "production" {
		env = midtrans.Production
	}
	snapClient.New(config.AppConfig.MidtransServerKey, env)
	coreClient.New(config.AppConfig.MidtransServerKey, env)
}

// CheckoutSession is the hosted checkout handle returned to the client.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateCheckoutSession opens a hosted checkout page for a course purchase.
// The order id doubles as the session identifier used for later verification.
func CreateCheckoutSession(orderID string, amount int64, courseTitle, name, email string) (*CheckoutSession, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: name,
			Email: email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    orderID,
				Name:  courseTitle,
				Price: amount,
				Qty:   1,
			},
		},
	}

	resp, err := snapClient.CreateTransaction(req)
	if err != nil {
		return nil, err
	}

	return &CheckoutSession{ID: orderID, URL: resp.RedirectURL}, nil
}

// PaymentConfirmation is the gateway's answer to a status check.
type PaymentConfirmation struct {
	Paid          bool
	TransactionID string
	Status        string
}

// CheckPaymentStatus asks the gateway whether the session has been paid.
// settlement, or capture with fraud accept, counts as paid.
func CheckPaymentStatus(orderID string) (*PaymentConfirmation, error) {
	resp, err := coreClient.CheckTransaction(orderID)
	if err != nil {
		return nil, err
	}

	paid := resp.TransactionStatus == "settlement" ||
		(resp.TransactionStatus == "capture" && resp.FraudStatus == "accept")

	return &PaymentConfirmation{
		Paid:          paid,
		TransactionID: resp.TransactionID,
		Status:        resp.TransactionStatus,
	}, nil
}

// VerifyWebhookSignature checks the gateway notification signature:
// SHA512(order_id + status_code + gross_amount + server_key).
func VerifyWebhookSignature(orderID, statusCode, grossAmount, signature string) bool {
	if signature == "" {
		return false
	}
	raw := orderID + statusCode + grossAmount + config.AppConfig.MidtransServerKey
	sum := sha512.Sum512([]byte(raw))
	return hex.EncodeToString(sum[:]) == signature
}
