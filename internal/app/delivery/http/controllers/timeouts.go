package controllers

import "time"

const (
	submissionTimeout = 30 * time.Second
	queryTimeout      = 10 * time.Second
)
