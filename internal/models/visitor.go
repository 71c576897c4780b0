package models

// Visitor represents a per-IP visit counter
type Visitor struct {
	ID         int    `json:"id"`
	IP         string `json:"ip"`
	UserAgent  string `json:"userAgent"`
	VisitCount int    `json:"visitCount"`
}

// VisitResult is returned when a visit is logged
type VisitResult struct {
	Message       string `json:"message"`
	NewVisitor    bool   `json:"newVisitor"`
	TotalVisitors int    `json:"totalVisitors"`
	TotalVisits   int    `json:"totalVisits"`
}
