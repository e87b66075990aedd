package evaluationmetric

type CreateMetricRequest struct {
	Metric    string `json:"metric" binding:"required"`
	AccountID *int64 `json:"account_id"`
}
