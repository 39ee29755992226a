// Package firestore stores the roster and the clock log in Cloud Firestore,
// using the collection layout artifacts/{appId}/public/data/{employees,time_logs}.
package firestore

import (
	"context"
	"fmt"
	"path"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

const (
	employeesCollection = "employees"
	timeLogsCollection  = "time_logs"
)

type Config struct {
	ProjectID       string
	CredentialsFile string
	AppID           string
}

// Store wraps a Firestore client scoped to one app id.
type Store struct {
	client *firestore.Client
	appID  string
}

func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return NewStoreWithClient(client, cfg.AppID), nil
}

func NewStoreWithClient(client *firestore.Client, appID string) *Store {
	return &Store{client: client, appID: appID}
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) employees() *firestore.CollectionRef {
	return s.client.Collection(collectionPath(s.appID, employeesCollection))
}

func (s *Store) timeLogs() *firestore.CollectionRef {
	return s.client.Collection(collectionPath(s.appID, timeLogsCollection))
}

func collectionPath(appID, name string) string {
	return path.Join("artifacts", appID, "public", "data", name)
}
