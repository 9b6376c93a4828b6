package query

// Re-export read models so handlers only depend on this package
import "github.com/example/startup-analytics/internal/readmodel"

type DashboardReadModel = readmodel.DashboardReadModel
type ActivityReadModel = readmodel.ActivityReadModel
type ActivityCountReadModel = readmodel.ActivityCountReadModel
type OverviewReadModel = readmodel.OverviewReadModel
