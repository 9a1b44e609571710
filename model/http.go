package model

type JudgeRequestBody struct {
	Direction   string `json:"direction"`
	TimestampMs uint32 `json:"timestamp_ms"`
}

type PatternResponse struct {
	ChartId string        `json:"chart_id"`
	Tempo   TempoInfo     `json:"tempo"`
	Notes   []PatternNote `json:"notes"`
}

type JudgeResponse struct {
	ChartId string         `json:"chart_id"`
	Result  JudgmentResult `json:"result"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
