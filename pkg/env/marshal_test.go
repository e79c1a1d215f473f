package env

import (
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	URL      string        `env:"SAMPLE_URL,required" envDefault:"https://example.com"`
	Timeout  time.Duration `env:"SAMPLE_TIMEOUT"`
	Retries  int           `env:"SAMPLE_RETRIES"`
	Rate     float64       `env:"SAMPLE_RATE"`
	Debug    bool          `env:"SAMPLE_DEBUG"`
	Title    string        `env:"SAMPLE_TITLE"`
	Internal string        `env:"SAMPLE_INTERNAL" envMarshal:"-"`
	NoTag    string
	hidden   string `env:"SAMPLE_HIDDEN"`
}

type other struct {
	Addr string `env:"OTHER_ADDR"`
}

func TestMarshalEnv(t *testing.T) {
	s := &sample{
		URL:      "https://example.com",
		Timeout:  1500 * time.Millisecond,
		Retries:  0,
		Rate:     2.5,
		Title:    "Random Facts Explorer",
		Internal: "x",
		NoTag:    "y",
		hidden:   "z",
	}

	out, err := MarshalEnv(s, &other{Addr: "127.0.0.1:8080"})
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"SAMPLE_URL=https://example.com",
		"SAMPLE_TIMEOUT=1.5s",
		"SAMPLE_RETRIES=0",
		"SAMPLE_RATE=2.5",
		"SAMPLE_DEBUG=false",
		`SAMPLE_TITLE="Random Facts Explorer"`,
		"OTHER_ADDR=127.0.0.1:8080",
	}, "\n")+"\n", out)
}

func TestMarshalEnv_RoundTripsThroughGodotenv(t *testing.T) {
	out, err := MarshalEnv(&sample{Title: "has # hash", URL: ""})
	require.NoError(t, err)

	parsed, err := godotenv.Unmarshal(out)
	require.NoError(t, err)
	assert.Equal(t, "has # hash", parsed["SAMPLE_TITLE"])
	assert.Equal(t, "", parsed["SAMPLE_URL"])
	assert.Equal(t, "0s", parsed["SAMPLE_TIMEOUT"])
}

func TestMarshalEnv_RejectsNonStruct(t *testing.T) {
	_, err := MarshalEnv(sample{})
	assert.Error(t, err)

	n := 3
	_, err = MarshalEnv(&n)
	assert.Error(t, err)
}
