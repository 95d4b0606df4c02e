// Package sweet picks and manages the short notes shown next to the albums.
package sweet

import (
	"fmt"
	"math/rand"
	"time"
	"unicode/utf16"
)

// Fallback is shown whenever there is nothing to pick from
const Fallback = "You’re the best part of my day."

const (
	hashSeed  uint32 = 2166136261
	hashPrime uint32 = 16777619
)

// DefaultPool is used by the public pages when no active message is stored
var DefaultPool = []string{
	"You make ordinary days feel like magic.",
	"You’re my favorite place to be.",
	"Thank you for being you.",
	"You’re the best part of my day.",
}

// DayKey formats the calendar date of t (in t's location) as YYYY-MM-DD
func DayKey(t time.Time) string {
	return fmt.Sprintf("%d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// Hash is 32-bit FNV-1a over the UTF-16 code units of s.
// The day keys are ASCII, where this matches FNV-1a over bytes.
func Hash(s string) uint32 {
	h := hashSeed
	for _, unit := range utf16.Encode([]rune(s)) {
		h ^= uint32(unit)
		h *= hashPrime
	}
	return h
}

// DailyIndex returns the pool index for the day of t. size must be positive
func DailyIndex(size int, t time.Time) int {
	return int(Hash(DayKey(t)) % uint32(size))
}

// Daily returns the message for the calendar day of t, the same one all day long
func Daily(pool []string, t time.Time) string {
	if len(pool) == 0 {
		return Fallback
	}
	return pool[DailyIndex(len(pool), t)]
}

// Picker returns a random message on every call
type Picker struct {
	intN func(n int) int
}

func NewPicker() *Picker {
	return &Picker{intN: rand.Intn}
}

func (p *Picker) Pick(pool []string) string {
	if len(pool) == 0 {
		return Fallback
	}
	return pool[p.intN(len(pool))]
}
