// Package dto содержит объекты передачи данных API магазина.
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Price - денежная сумма. API отдает Decimal то числом, то строкой, поэтому
// принимаются оба варианта.
type Price float64

// UnmarshalJSON разбирает число, строку с числом или null.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*p = 0
			return nil
		}
		data = []byte(s)
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", data, err)
	}
	*p = Price(v)
	return nil
}

func (p Price) String() string {
	return strconv.FormatFloat(float64(p), 'f', 2, 64)
}

// MarshalJSON кодирует сумму строкой с двумя знаками, как ее отдает API.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.String())), nil
}
