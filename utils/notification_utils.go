package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/gomail.v2"

	"github.com/signforge/signforge_backend/config"
	"github.com/signforge/signforge_backend/models"
)

// SaveNotification stores an in-app notification for a user
func SaveNotification(db *mongo.Client, userID primitive.ObjectID, title, message, notifType string, data interface{}) error {
	coll := config.GetCollection(db, "notifications")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	notification := models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      notifType,
		Data:      data,
		Read:      false,
		CreatedAt: time.Now(),
	}
	_, err := coll.InsertOne(ctx, notification)
	return err
}

// smtpConfig resolves the organization's SMTP settings, falling back
// to the environment. Password always comes from the environment.
func smtpConfig(db *mongo.Client, orgID primitive.ObjectID) (host string, port int, user, from string) {
	host = os.Getenv("SMTP_HOST")
	user = os.Getenv("SMTP_USER")
	from = user
	port = 2525
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		fmt.Sscanf(portStr, "%d", &port)
	}

	coll := config.GetCollection(db, "integrationSettings")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var settings models.IntegrationSettings
	if err := coll.FindOne(ctx, bson.M{"organizationId": orgID}).Decode(&settings); err == nil && settings.SMTP != nil {
		if settings.SMTP.Host != "" {
			host = settings.SMTP.Host
		}
		if settings.SMTP.Port != 0 {
			port = settings.SMTP.Port
		}
		if settings.SMTP.User != "" {
			user = settings.SMTP.User
		}
		if settings.SMTP.From != "" {
			from = settings.SMTP.From
		}
	}
	return host, port, user, from
}

// SendEmail sends a plain-text email via the organization's SMTP settings
func SendEmail(db *mongo.Client, orgID primitive.ObjectID, to, subject, body string) error {
	host, port, user, from := smtpConfig(db, orgID)
	pass := os.Getenv("SMTP_PASS")

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(host, port, user, pass)
	return d.DialAndSend(m)
}

// NotifyDesignDecision informs the submitter of a design review outcome
// by email and in-app notification
func NotifyDesignDecision(db *mongo.Client, version *models.DesignVersion, projectName string) {
	var submitter models.User
	err := config.GetCollection(db, "users").FindOne(context.Background(), bson.M{"_id": version.SubmittedBy}).Decode(&submitter)
	if err != nil {
		log.Printf("Failed to find design submitter: %v", err)
		return
	}

	subject := fmt.Sprintf("Design v%d %s", version.Version, version.Status)
	body := fmt.Sprintf("Dear %s,\n\nYour design version %d for project %s has been %s.", submitter.FullName, version.Version, projectName, version.Status)
	if version.ReviewNote != "" {
		body += "\n\nReviewer note: " + version.ReviewNote
	}
	body += "\n\nBest regards,\nSignForge"

	if err := SendEmail(db, version.OrganizationID, submitter.Email, subject, body); err != nil {
		log.Printf("Failed to send design decision email: %v", err)
	}

	notifMsg := fmt.Sprintf("Design version %d for %s was %s.", version.Version, projectName, version.Status)
	if err := SaveNotification(db, submitter.ID, subject, notifMsg, models.NotificationTypeDesignDecision, map[string]interface{}{
		"designVersionId": version.ID.Hex(),
		"projectId":       version.ProjectID.Hex(),
	}); err != nil {
		log.Printf("Failed to save design decision notification: %v", err)
	}
}

// NotifySettlement informs a user their monthly commissions were paid out
func NotifySettlement(db *mongo.Client, payment *models.CommissionPayment) {
	var user models.User
	err := config.GetCollection(db, "users").FindOne(context.Background(), bson.M{"_id": payment.UserID}).Decode(&user)
	if err != nil {
		log.Printf("Failed to find settlement recipient: %v", err)
		return
	}

	subject := fmt.Sprintf("Commission payment for %d-%02d", payment.Year, payment.Month)
	body := fmt.Sprintf("Dear %s,\n\nYour commissions for %d-%02d have been settled. Amount: %.2f.\n\nBest regards,\nSignForge", user.FullName, payment.Year, payment.Month, payment.Amount)

	if err := SendEmail(db, user.OrganizationID, user.Email, subject, body); err != nil {
		log.Printf("Failed to send settlement email: %v", err)
	}

	notifMsg := fmt.Sprintf("Commission payment of %.2f processed for %d-%02d.", payment.Amount, payment.Year, payment.Month)
	if err := SaveNotification(db, user.ID, subject, notifMsg, models.NotificationTypeSettlement, map[string]interface{}{
		"paymentId": payment.ID.Hex(),
	}); err != nil {
		log.Printf("Failed to save settlement notification: %v", err)
	}
}
