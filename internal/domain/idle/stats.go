package idle

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownStat = errors.New("unknown stat key")

type StatKind string

const (
	StatXPGainMult StatKind = "xp.gain.mult"
	StatAmount     StatKind = "amount"
	StatMult       StatKind = "mult"
	StatSpeed      StatKind = "speed"
)

const prodPrefix = "prod."

// StatKey names one resolvable stat. XP gain is global; the node stats are
// scoped to a node's stat namespace.
type StatKey struct {
	Kind   StatKind
	Target string
}

func XPGainMult() StatKey                 { return StatKey{Kind: StatXPGainMult} }
func AmountStat(namespace string) StatKey { return StatKey{Kind: StatAmount, Target: namespace} }
func MultStat(namespace string) StatKey   { return StatKey{Kind: StatMult, Target: namespace} }
func SpeedStat(namespace string) StatKey  { return StatKey{Kind: StatSpeed, Target: namespace} }

func (k StatKey) String() string {
	if k.Kind == StatXPGainMult {
		return string(StatXPGainMult)
	}
	return prodPrefix + k.Target + "." + string(k.Kind)
}

func (k StatKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *StatKey) UnmarshalText(b []byte) error {
	parsed, err := ParseStatKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseStatKey accepts "xp.gain.mult" and "prod.<namespace>.<amount|mult|speed>".
// It checks shape only; whether the namespace exists is up to the catalog.
func ParseStatKey(raw string) (StatKey, error) {
	s := strings.TrimSpace(raw)
	if s == string(StatXPGainMult) {
		return XPGainMult(), nil
	}
	if !strings.HasPrefix(s, prodPrefix) {
		return StatKey{}, fmt.Errorf("%w: %q", ErrUnknownStat, raw)
	}
	rest := strings.TrimPrefix(s, prodPrefix)
	dot := strings.LastIndex(rest, ".")
	if dot <= 0 || dot == len(rest)-1 {
		return StatKey{}, fmt.Errorf("%w: %q", ErrUnknownStat, raw)
	}
	target, kind := rest[:dot], StatKind(rest[dot+1:])
	switch kind {
	case StatAmount, StatMult, StatSpeed:
		return StatKey{Kind: kind, Target: target}, nil
	default:
		return StatKey{}, fmt.Errorf("%w: %q", ErrUnknownStat, raw)
	}
}

func defaultBase(kind StatKind) float64 {
	switch kind {
	case StatAmount:
		return 0
	default:
		return 1
	}
}
