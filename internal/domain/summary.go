package domain

// QuarterlyBucket soma os pontos futuros da previsão de um trimestre.
// ActualSum é nil quando não existe nenhuma observação real no trimestre.
type QuarterlyBucket struct {
	Quarter       QuarterKey `json:"quarter"`
	ForecastedSum float64    `json:"forecasted_sum"`
	ActualSum     *float64   `json:"actual_sum"`
}

// SummaryRow é a linha exibida na tabela trimestral.
// Percentuais nil representam valores indefinidos (sem histórico ou divisão por zero).
type SummaryRow struct {
	Quarter          QuarterKey `json:"quarter"`
	RevenueThousands float64    `json:"revenue_thousands"`
	QoQPctChange     *float64   `json:"qoq_pct_change"`
	YoYPctChange     *float64   `json:"yoy_pct_change"`
}
