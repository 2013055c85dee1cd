package models

type Error struct {
	Status int      `json:"status"`
	Error  []string `json:"error"`
}

type BodyKey struct{}

type QueryKey struct{}

type LoggerKey struct{}
