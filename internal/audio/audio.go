// Package audio turns a running world into an ambient drone: kinetic energy
// opens a low-pass filter and the alive count sets how many voices play.
package audio

import (
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/san-kum/hadron/internal/sim"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// G2, Bb2, D3, F3, A3
var voices = []float64{98.00, 116.54, 146.83, 174.61, 220.00}

type Sonifier struct {
	stream *portaudio.Stream

	time        float64
	filterState [2]float64
	delayLine   [2][]float64
	delayHead   int

	mu           sync.Mutex
	energy       float64
	alive        float64
	energySmooth float64
	aliveSmooth  float64
	energyScale  float64
}

// NewSonifier maps a kinetic energy of energyScale to the fully open filter.
func NewSonifier(energyScale float64) *Sonifier {
	delayLen := int(float64(SampleRate) * 0.6)
	if energyScale <= 0 {
		energyScale = 1
	}
	return &Sonifier{
		delayLine:   [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
		energyScale: energyScale,
	}
}

// Start opens the default output device, stereo with no input.
func (s *Sonifier) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, s.Process)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}
	s.stream = stream
	return nil
}

func (s *Sonifier) Stop() {
	if s.stream == nil {
		return
	}
	s.stream.Stop()
	s.stream.Close()
	portaudio.Terminate()
	s.stream = nil
}

func (s *Sonifier) OnStep(w *sim.World, t float64) {
	total := w.Particles.Len()
	frac := 0.0
	if total > 0 {
		frac = float64(w.AliveCount()) / float64(total)
	}
	s.Update(float64(w.KineticEnergy()), frac)
}

// Update sets the energy and the alive fraction in [0, 1] that the next
// buffers morph towards.
func (s *Sonifier) Update(kineticEnergy, aliveFraction float64) {
	s.mu.Lock()
	s.energy = kineticEnergy
	s.alive = math.Max(0, math.Min(1, aliveFraction))
	s.mu.Unlock()
}

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// lpf is a one pole low-pass filter.
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

func (s *Sonifier) cutoff() float64 {
	return 300.0 + 900.0*math.Min(s.energySmooth/s.energyScale, 1)
}

// Process fills one output buffer. It is the portaudio stream callback.
func (s *Sonifier) Process(out [][]float32) {
	s.mu.Lock()
	targetEnergy, targetAlive := s.energy, s.alive
	s.mu.Unlock()

	s.energySmooth = s.energySmooth*0.995 + targetEnergy*0.005
	s.aliveSmooth = s.aliveSmooth*0.99 + targetAlive*0.01

	cutoff := s.cutoff()
	dt := 1.0 / float64(SampleRate)
	vol := 0.252
	active := 1 + int(math.Round(s.aliveSmooth*float64(len(voices)-1)))

	for i := 0; i < len(out[0]); i++ {
		sampleL := 0.0
		sampleR := 0.0

		for j, f := range voices[:active] {
			oscL := triangle(s.time * (f * 0.999))
			oscR := triangle(s.time * (f * 1.001))

			g := 1.0 / float64(len(voices))

			// slow breathing
			lfo := math.Sin(s.time*0.2 + float64(j))

			sampleL += oscL * g * (0.7 + 0.3*lfo)
			sampleR += oscR * g * (0.7 + 0.3*lfo)
		}

		s.filterState[0] = lpf(sampleL, cutoff, dt, s.filterState[0])
		s.filterState[1] = lpf(sampleR, cutoff, dt, s.filterState[1])
		outL, outR := s.filterState[0], s.filterState[1]

		delayL := s.delayLine[0][s.delayHead]
		delayR := s.delayLine[1][s.delayHead]

		// ping-pong feedback
		mixL := outL + delayL*0.3 + delayR*0.1
		mixR := outR + delayR*0.3 + delayL*0.1

		s.delayLine[0][s.delayHead] = mixL * 0.7
		s.delayLine[1][s.delayHead] = mixR * 0.7
		s.delayHead = (s.delayHead + 1) % len(s.delayLine[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)

		s.time += dt
	}
}
