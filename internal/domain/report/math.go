package report

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// percent calcula part/total × 100 con 2 decimales. Devuelve 0 si total no es positivo.
func percent(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(2)
}

// average calcula sum/n redondeado a unidades monetarias. 0 si n == 0.
func average(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n))).Round(0)
}

// money redondea un acumulado monetario a unidades enteras (presentación).
func money(d decimal.Decimal) decimal.Decimal { return d.Round(0) }

// orderedKeys conserva el orden de primera aparición de las claves de un agrupamiento.
type orderedKeys struct {
	seen map[string]int
	keys []string
}

func newOrderedKeys() *orderedKeys { return &orderedKeys{seen: make(map[string]int)} }

// index devuelve la posición de key, registrándola si es nueva. El bool indica si es nueva.
func (o *orderedKeys) index(key string) (int, bool) {
	if i, ok := o.seen[key]; ok {
		return i, false
	}
	o.seen[key] = len(o.keys)
	o.keys = append(o.keys, key)
	return len(o.keys) - 1, true
}

// orDefault devuelve def si s está vacío.
func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// topN ordena una copia de items por less (estable) y devuelve los primeros n.
func topN[T any](items []T, n int, less func(a, b T) bool) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
