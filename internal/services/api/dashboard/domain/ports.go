package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Options(ctx context.Context, in SelectionInput) (OptionsResponse, error)
	Report(ctx context.Context, in ReportInput) (ReportResponse, error)
	Overview(ctx context.Context) (OverviewResponse, error)
}
