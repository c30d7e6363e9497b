// Package domain contains the task entity and its validation rules. It has no
// knowledge of HTTP or storage; both the API layer and the store build on it.
package domain
