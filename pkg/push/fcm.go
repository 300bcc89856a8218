package push

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Notifier delivers notifications to a device. Implemented by the FCM
// client below; handlers treat delivery as best-effort and never fail a
// request on a push error.
type Notifier interface {
	Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error
}

// FCMNotifier sends push messages through Firebase Cloud Messaging
type FCMNotifier struct {
	client *messaging.Client
}

// InitFCM initializes the Firebase app and messaging client from a service
// account credentials file
func InitFCM(ctx context.Context, credentialsPath string) (*FCMNotifier, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("firebase credentials path not provided")
	}
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("firebase credentials file not found at %s", credentialsPath)
	}

	opt := option.WithCredentialsFile(credentialsPath)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase messaging client: %w", err)
	}

	log.Println("Firebase messaging client initialized successfully!")
	return &FCMNotifier{client: client}, nil
}

// Send delivers a single push message to one device token
func (n *FCMNotifier) Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data:  data,
		Token: deviceToken,
	}

	response, err := n.client.Send(ctx, message)
	if err != nil {
		log.Printf("Error sending push notification: %v", err)
		return err
	}

	log.Printf("Successfully sent push message: %s", response)
	return nil
}
