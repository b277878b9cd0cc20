package models

// Envelope is the uniform wrapper every storefront endpoint responds with.
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}
