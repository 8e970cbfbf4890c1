package interfaces

import "navcheck/domain/entities"

// ReportStore persists suite reports
type ReportStore interface {
	// Save writes the report to its destination
	Save(report *entities.SuiteReport) error
}
