// Package normalisers provides implementations of the UnitNormaliser
// interface. A normaliser is the single boundary at which the loosely-typed
// decoded tree is coerced into canonical domain records; nothing downstream
// ever sees the raw shape.
package normalisers
