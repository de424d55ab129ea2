// Package lighting provides the light types uploaded to the scene shader.
package lighting

import (
	gomath "math"
)

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 32

// PointLight represents a point light source for GPU upload.
type PointLight struct {
	Position  [3]float32 // World position
	Color     [3]float32 // RGB color (0-1 range)
	Range     float32    // Cutoff distance, 0 means unbounded
	Decay     float32    // Falloff exponent
	Intensity float32    // Light intensity multiplier
}

// NewPointLight creates a light with the given color, intensity, range and decay.
func NewPointLight(color [3]float32, intensity, rng, decay float32) PointLight {
	return PointLight{Color: color, Intensity: intensity, Range: rng, Decay: decay}
}

// Attenuation returns the falloff factor at distance d. Matches the shader:
// pow(clamp(1 - d/range, 0, 1), decay), or 1 when range is 0.
func (l PointLight) Attenuation(d float32) float32 {
	if l.Range <= 0 {
		return 1
	}
	f := 1 - d/l.Range
	if f <= 0 {
		return 0
	}
	if f > 1 {
		f = 1
	}
	return float32(gomath.Pow(float64(f), float64(l.Decay)))
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight
	Count  int
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// AddLight adds a point light to the buffer.
// Returns false if buffer is full. Lights with zero intensity are skipped
// and reported as added.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if light.Intensity <= 0 {
		return true
	}
	if b.Count >= MaxPointLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	b.Count++
	return true
}

// GetPositions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *PointLightBuffer) GetPositions() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		result[i*3+0] = light.Position[0]
		result[i*3+1] = light.Position[1]
		result[i*3+2] = light.Position[2]
	}
	return result
}

// GetColors returns colors premultiplied by intensity.
// Format: [r0, g0, b0, r1, g1, b1, ...]
func (b *PointLightBuffer) GetColors() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		result[i*3+0] = light.Color[0] * light.Intensity
		result[i*3+1] = light.Color[1] * light.Intensity
		result[i*3+2] = light.Color[2] * light.Intensity
	}
	return result
}

// GetRanges returns ranges as a flat float32 slice for GPU upload.
func (b *PointLightBuffer) GetRanges() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Range
	}
	return result
}

// GetDecays returns decay exponents as a flat float32 slice for GPU upload.
func (b *PointLightBuffer) GetDecays() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Decay
	}
	return result
}
