package dto

import "time"

type CreateInput struct {
	Profile string
	Force   bool
}

type StrategyOutput struct {
	Profile     string
	Content     string
	Path        string
	GeneratedAt time.Time
	Meetings    int
	Reports     int
	Model       string
}
