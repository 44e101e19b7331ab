// Package awsclient builds the Athena and DynamoDB clients. They are created
// once at start-up and shared by every request.
package awsclient

import (
	"errors"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"reportapi/internal/config"
)

// requestTimeout bounds a single SDK call. Long query waits are a sequence of
// short polls, so no call should come close.
const requestTimeout = 30 * time.Second

var ErrMissingCredentials = errors.New("aws access key id and secret access key are required")

// Clients are the SDK clients used by the service.
type Clients struct {
	Athena   *athena.Client
	DynamoDB *dynamodb.Client
}

// New builds both clients from static credentials.
func New(cfg config.AWSConfig) (*Clients, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, ErrMissingCredentials
	}
	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)
	httpClient := &http.Client{
		Timeout:   requestTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	endpoint := baseEndpoint(cfg.Endpoint)

	return &Clients{
		Athena: athena.New(athena.Options{
			Region:       cfg.Region,
			Credentials:  creds,
			BaseEndpoint: endpoint,
			HTTPClient:   httpClient,
		}),
		DynamoDB: dynamodb.New(dynamodb.Options{
			Region:       cfg.Region,
			Credentials:  creds,
			BaseEndpoint: endpoint,
			HTTPClient:   httpClient,
		}),
	}, nil
}

func baseEndpoint(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}
