package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/irrigatech/irrigation-monitoring-backend/internal/cloud"
	"github.com/irrigatech/irrigation-monitoring-backend/internal/repository"
)

// ReportService exports an admin's canal readings as a CSV object in S3.
type ReportService struct {
	repos *repository.Repos
	s3    *cloud.S3Client
}

// FlowReport builds a CSV of every canal reading scoped to the admin, uploads
// it and returns a presigned download URL.
func (s *ReportService) FlowReport(adminID string) (string, error) {
	if s.s3 == nil {
		return "", fmt.Errorf("cloud services not enabled")
	}

	canals, err := s.repos.ListCanals(adminID)
	if err != nil {
		return "", fmt.Errorf("canal list failed: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"canal_id", "flow_rate", "timestamp"})
	for _, canalID := range canals {
		readings, err := s.repos.ListCanalFlow(canalID, adminID)
		if err != nil {
			return "", fmt.Errorf("canal flow fetch failed: %w", err)
		}
		for _, rd := range readings {
			_ = w.Write([]string{
				rd.CanalID,
				strconv.FormatFloat(rd.FlowRate, 'f', -1, 64),
				rd.Timestamp.Format(time.RFC3339),
			})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("csv write failed: %w", err)
	}

	key := fmt.Sprintf("flow-reports/%s/%d.csv", adminID, time.Now().Unix())
	url, err := s.s3.UploadReport(key, buf.Bytes(), "text/csv")
	if err != nil {
		return "", fmt.Errorf("report upload failed: %w", err)
	}
	return url, nil
}
