package ir

import (
	"slices"
	"unicode/utf16"
)

// IRValue is a value that can be canonically serialized.
// The unexported method seals the set of implementations.
type IRValue interface {
	irValue()
}

// IRString is a string value. Strings are NFC normalized on serialization.
type IRString string

func (IRString) irValue() {}

// IRInt is a signed integer value.
type IRInt int64

func (IRInt) irValue() {}

// IRUint is an unsigned integer value. Arrangement counts use the full
// uint64 range and do not fit in IRInt.
type IRUint uint64

func (IRUint) irValue() {}

// IRBool is a boolean value.
type IRBool bool

func (IRBool) irValue() {}

// IRArray is an ordered list of values.
type IRArray []IRValue

func (IRArray) irValue() {}

// IRObject is a string-keyed map of values.
// Use SortedKeys() for deterministic iteration.
type IRObject map[string]IRValue

func (IRObject) irValue() {}

// Ints converts a slice of ints to an IRArray.
func Ints(ns []int) IRArray {
	arr := make(IRArray, len(ns))
	for i, n := range ns {
		arr[i] = IRInt(n)
	}
	return arr
}

// Uints converts a slice of uint64 to an IRArray.
func Uints(ns []uint64) IRArray {
	arr := make(IRArray, len(ns))
	for i, n := range ns {
		arr[i] = IRUint(n)
	}
	return arr
}

// Strings converts a slice of strings to an IRArray.
func Strings(ss []string) IRArray {
	arr := make(IRArray, len(ss))
	for i, s := range ss {
		arr[i] = IRString(s)
	}
	return arr
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's sort.Strings compares UTF-8 bytes, which orders supplementary-plane
// characters differently.
func (obj IRObject) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

func compareKeysRFC8785(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}
