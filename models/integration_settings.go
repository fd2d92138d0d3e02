package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SMTPSettings holds per-organization outbound mail configuration.
// Password comes from the environment, never from this document.
type SMTPSettings struct {
	Host string `json:"host,omitempty" bson:"host,omitempty"`
	Port int    `json:"port,omitempty" bson:"port,omitempty"`
	User string `json:"user,omitempty" bson:"user,omitempty"`
	From string `json:"from,omitempty" bson:"from,omitempty"`
}

// IntegrationSettings is the single messaging/integrations document for
// an organization (upsert semantics)
type IntegrationSettings struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OrganizationID     primitive.ObjectID `json:"organizationId" bson:"organizationId"`
	SMTP               *SMTPSettings      `json:"smtp,omitempty" bson:"smtp,omitempty"`
	WebhookURL         string             `json:"webhookUrl,omitempty" bson:"webhookUrl,omitempty"`
	SlackWebhookURL    string             `json:"slackWebhookUrl,omitempty" bson:"slackWebhookUrl,omitempty"`
	NotifyOnApproval   bool               `json:"notifyOnApproval" bson:"notifyOnApproval"`
	NotifyOnSettlement bool               `json:"notifyOnSettlement" bson:"notifyOnSettlement"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type UpdateIntegrationSettingsRequest struct {
	SMTP               *SMTPSettings `json:"smtp,omitempty"`
	WebhookURL         string        `json:"webhookUrl,omitempty"`
	SlackWebhookURL    string        `json:"slackWebhookUrl,omitempty"`
	NotifyOnApproval   bool          `json:"notifyOnApproval"`
	NotifyOnSettlement bool          `json:"notifyOnSettlement"`
}
