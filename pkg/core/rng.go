package core

// DefaultSeed is the fixed seed a freshly constructed world starts from.
const DefaultSeed uint32 = 0xDEADBEEF

// XorShift32 is a 32-bit xorshift generator. It is a plain value: copying it
// forks the sequence, which lets tests replay draws independently.
type XorShift32 struct {
	state uint32
}

// NewXorShift32 creates a generator seeded with seed. A zero seed would lock
// the register at zero, so it is replaced with 1.
func NewXorShift32(seed uint32) XorShift32 {
	if seed == 0 {
		seed = 1
	}
	return XorShift32{state: seed}
}

// Seed resets the register.
func (r *XorShift32) Seed(seed uint32) {
	if seed == 0 {
		seed = 1
	}
	r.state = seed
}

// State returns the raw register value.
func (r *XorShift32) State() uint32 { return r.state }

// Next advances the register and returns it.
func (r *XorShift32) Next() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Float32 returns a value in [0, 1) built from the top 24 bits.
func (r *XorShift32) Float32() float32 {
	return float32(r.Next()>>8) * (1.0 / 16777216.0)
}

// Range returns a value in [lo, hi).
func (r *XorShift32) Range(lo, hi float32) float32 {
	return lo + r.Float32()*(hi-lo)
}

// Bool returns true with probability p.
func (r *XorShift32) Bool(p float32) bool {
	return r.Float32() < p
}
