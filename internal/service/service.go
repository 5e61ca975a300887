package service

import (
	"github.com/jmoiron/sqlx"

	"github.com/irrigatech/irrigation-monitoring-backend/internal/cloud"
	"github.com/irrigatech/irrigation-monitoring-backend/internal/repository"
)

type Services struct {
	Repos     *repository.Repos
	Auth      *AuthService
	Telemetry *TelemetryService
	Reports   *ReportService
}

func New(db *sqlx.DB) *Services {
	repos := repository.New(db)
	return &Services{
		Repos:     repos,
		Auth:      &AuthService{repos: repos},
		Telemetry: &TelemetryService{repos: repos},
		Reports:   &ReportService{repos: repos},
	}
}

// EnableCloud attaches the optional AWS side-channels: SNS violation alerts,
// a DynamoDB mirror for canal readings, and S3 report storage. All are
// best-effort; requests never fail on cloud errors.
func (s *Services) EnableCloud(sns *cloud.SNSClient, dynamo *cloud.DynamoDBClient, s3 *cloud.S3Client) {
	s.Telemetry.sns = sns
	s.Telemetry.dynamo = dynamo
	s.Reports.s3 = s3
}
