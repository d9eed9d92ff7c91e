package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

// JSONB allows storing JSON data in a PostgreSQL jsonb column.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, &j)
}

// JwtClaims are the claims carried by the bearer tokens issued by the
// identity collaborator. Only UserID and Role are consumed here.
type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
