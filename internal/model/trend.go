package model

// TrendStats holds the engagement totals behind an AI trend card
type TrendStats struct {
	TotalRecommends int     `json:"total_recommends"`
	TotalComments   int     `json:"total_comments"`
	TotalViews      int     `json:"total_views,omitempty"`
	TrendScore      float64 `json:"trend_score,omitempty"`
}

// TrendData is the AI recommendation payload for one period
type TrendData struct {
	Title              string     `json:"title,omitempty"`
	SectionsText       string     `json:"sections_text,omitempty"`
	Keywords           []string   `json:"keywords"`
	Summary            string     `json:"summary"`
	HeadlineArray      []string   `json:"headline_array,omitempty"`
	Stats              TrendStats `json:"stats"`
	Score              float64    `json:"score"`
	Period             string     `json:"period"`
	PeriodText         string     `json:"period_text,omitempty"`
	PeriodHours        string     `json:"period_hours,omitempty"`
	TrendDirection     string     `json:"trend_direction,omitempty"` // up, stable, down
	Confidence         float64    `json:"confidence,omitempty"`
	Sentiment          string     `json:"sentiment,omitempty"`
	PredictedGrowth    float64    `json:"predicted_growth,omitempty"`
	TimestampRelative  string     `json:"timestamp_relative,omitempty"`
	TopSection         string     `json:"top_section,omitempty"`
	AmbientWhisper     string     `json:"ambient_whisper,omitempty"`
	AnalysisCommentary string     `json:"analysis_commentary,omitempty"`
}
