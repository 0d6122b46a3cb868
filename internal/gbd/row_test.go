package gbd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRow_Float(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  Null[float64]
	}{
		{"float", 1.5, Known(1.5)},
		{"int", 3, Known(3.0)},
		{"int64", int64(4), Known(4.0)},
		{"string", "2.25", Known(2.25)},
		{"bytes", []byte("7"), Known(7.0)},
		{"nan", math.NaN(), Unknown[float64]()},
		{"nan string", "NaN", Unknown[float64]()},
		{"nil", nil, Unknown[float64]()},
		{"garbage", "abc", Unknown[float64]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Row{"v": tt.value}.Float("v"))
		})
	}

	assert.Equal(t, Unknown[float64](), Row{}.Float("absent"))
}

func TestRow_Int(t *testing.T) {
	assert.Equal(t, Known(294), Row{"v": 294}.Int("v"))
	assert.Equal(t, Known(294), Row{"v": int64(294)}.Int("v"))
	assert.Equal(t, Known(2), Row{"v": 2.9}.Int("v"))
	assert.Equal(t, Unknown[int](), Row{"v": math.NaN()}.Int("v"))
	assert.Equal(t, Unknown[int](), Row{}.Int("v"))
}

func TestRow_String(t *testing.T) {
	assert.Equal(t, Known("Cholera"), Row{"v": "Cholera"}.String("v"))
	assert.Equal(t, Unknown[string](), Row{"v": "nan"}.String("v"))
	assert.Equal(t, Unknown[string](), Row{"v": ""}.String("v"))
	assert.Equal(t, Unknown[string](), Row{"v": math.NaN()}.String("v"))
	assert.Equal(t, Known("128"), Row{"v": int64(128)}.String("v"))
	assert.Equal(t, Known("128"), Row{"v": 128.0}.String("v"))
}

func TestRow_Bool(t *testing.T) {
	assert.Equal(t, Known(true), Row{"v": true}.Bool("v"))
	assert.Equal(t, Known(true), Row{"v": 1}.Bool("v"))
	assert.Equal(t, Known(false), Row{"v": 0.0}.Bool("v"))
	assert.Equal(t, Known(true), Row{"v": "t"}.Bool("v"))
	assert.Equal(t, Known(false), Row{"v": "0"}.Bool("v"))
	assert.Equal(t, Unknown[bool](), Row{"v": math.NaN()}.Bool("v"))
	assert.Equal(t, Unknown[bool](), Row{"v": nil}.Bool("v"))
}

func TestRow_IDs(t *testing.T) {
	ids, ok := Row{"v": []any{1, int64(2), 3.0, "x"}}.IDs("v")
	assert.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, ids)

	_, ok = Row{"v": 1}.IDs("v")
	assert.False(t, ok)
}

func TestNull(t *testing.T) {
	assert.Equal(t, "UNKNOWN", Unknown[int]().String())
	assert.Equal(t, "3", Known(3).String())
	assert.Equal(t, 5, Unknown[int]().Or(5))
	assert.Nil(t, Unknown[int]().Ptr())
	assert.Equal(t, 3, *Known(3).Ptr())

	v, ok := Known("a").Get()
	assert.True(t, ok)
	assert.Equal(t, "a", v)
}
