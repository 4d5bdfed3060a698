package project

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("project not found")

type Project struct {
	ID        uuid.UUID
	Name      string
	Customer  string
	CreatedAt time.Time
}
