package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadEnv(t *testing.T) {
	t.Setenv("KEEPSAKE_TEST_STRING", "hello")
	t.Setenv("KEEPSAKE_TEST_BOOL_ON", "Yes")
	t.Setenv("KEEPSAKE_TEST_BOOL_OFF", "off")
	t.Setenv("KEEPSAKE_TEST_INT", "42")
	t.Setenv("KEEPSAKE_TEST_BAD_INT", "forty-two")
	t.Setenv("KEEPSAKE_TEST_FLOAT", "39.9254474")

	s := "default"
	readEnvString("KEEPSAKE_TEST_STRING", &s)
	assert.Equal(t, "hello", s)

	missing := "default"
	readEnvString("KEEPSAKE_TEST_MISSING", &missing)
	assert.Equal(t, "default", missing)

	on, off, untouched := false, true, true
	readEnvBool("KEEPSAKE_TEST_BOOL_ON", &on)
	readEnvBool("KEEPSAKE_TEST_BOOL_OFF", &off)
	readEnvBool("KEEPSAKE_TEST_MISSING", &untouched)
	assert.True(t, on)
	assert.False(t, off)
	assert.True(t, untouched)

	i, bad := 1, 7
	readEnvInt("KEEPSAKE_TEST_INT", &i)
	readEnvInt("KEEPSAKE_TEST_BAD_INT", &bad)
	assert.Equal(t, 42, i)
	assert.Equal(t, 7, bad)

	f := 0.0
	readEnvFloat("KEEPSAKE_TEST_FLOAT", &f)
	assert.InDelta(t, 39.9254474, f, 1e-9)
}

func TestCORSOrigins(t *testing.T) {
	old := CORS_ORIGINS
	defer func() { CORS_ORIGINS = old }()

	CORS_ORIGINS = "https://a.example, ,https://b.example"
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, CORSOrigins())

	CORS_ORIGINS = ""
	assert.Empty(t, CORSOrigins())
}
