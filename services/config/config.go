package config

import (
	"encoding/json"

	"joytracker/errcode"
	"joytracker/types"
)

// -----------------------------------------------------------------------------
// Embedded overlays
//
// Key: board name. Val: raw JSON applied on top of Default().
// -----------------------------------------------------------------------------

const cfgBitDogLab = `{}`

// Same wiring, but the three buttons share one debounce clock.
const cfgBitDogLabShared = `{
  "buttons": {"shared": true}
}`

var embeddedConfigs = map[string][]byte{
	"bitdoglab":        []byte(cfgBitDogLab),
	"bitdoglab-shared": []byte(cfgBitDogLabShared),
}

// EmbeddedConfigLookup allows overriding how overlays are resolved.
var EmbeddedConfigLookup = func(board string) ([]byte, bool) {
	b, ok := embeddedConfigs[board]
	return b, ok
}

// Default is the BitDogLab (RP2040) wiring: SSD1306 on i2c1, joystick on
// ADC0/ADC1, buttons A/B and the joystick switch, RGB LED on GPIO 11..13.
func Default() types.Config {
	return types.Config{
		Pins: types.PinPlan{
			AxisX:    27,
			AxisY:    26,
			Joystick: 22,
			Mode:     5,
			Bootsel:  6,
			Red:      13,
			Green:    11,
			Blue:     12,
		},
		Display: types.DisplayPlan{
			I2C:         "i2c1",
			SDA:         14,
			SCL:         15,
			Hz:          400_000,
			Address:     0x3C,
			Width:       128,
			Height:      64,
			Cursor:      8,
			ThinMargin:  1,
			ThickMargin: 3,
		},
		LED: types.LEDPlan{
			FreqHz:    1_000,
			Top:       2048,
			GreenDuty: 1024,
		},
		Buttons: types.ButtonPlan{
			DebounceMs: 200,
		},
		TickMs: 100,
	}
}

// Load resolves the overlay for board and validates the result.
func Load(board string) (types.Config, error) {
	raw, ok := EmbeddedConfigLookup(board)
	if !ok {
		return types.Config{}, errcode.Wrap(errcode.InvalidConfig, "config.load", "no embedded config for board: "+board)
	}
	return Decode(raw)
}

// Decode applies a JSON overlay to Default and validates the result.
func Decode(raw []byte) (types.Config, error) {
	cfg := Default()
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return types.Config{}, &errcode.E{C: errcode.InvalidConfig, Op: "config.decode", Msg: "not a JSON object", Err: err}
		}
	}
	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// Validate rejects configs the firmware cannot run with.
func Validate(cfg types.Config) error {
	const op = "config.validate"
	d := cfg.Display

	if _, err := types.ADCChannelOf(cfg.Pins.AxisX); err != nil {
		return &errcode.E{C: errcode.InvalidChannel, Op: op, Msg: "axis_x is not an ADC pin", Err: err}
	}
	if _, err := types.ADCChannelOf(cfg.Pins.AxisY); err != nil {
		return &errcode.E{C: errcode.InvalidChannel, Op: op, Msg: "axis_y is not an ADC pin", Err: err}
	}
	if cfg.Pins.AxisX == cfg.Pins.AxisY {
		return errcode.Wrap(errcode.InvalidConfig, op, "axes share an ADC pin")
	}

	seen := map[int]string{}
	for _, p := range []struct {
		name string
		pin  int
	}{
		{"joystick_sw", cfg.Pins.Joystick},
		{"button_a", cfg.Pins.Mode},
		{"button_b", cfg.Pins.Bootsel},
		{"red", cfg.Pins.Red},
		{"green", cfg.Pins.Green},
		{"blue", cfg.Pins.Blue},
		{"axis_x", cfg.Pins.AxisX},
		{"axis_y", cfg.Pins.AxisY},
		{"sda", d.SDA},
		{"scl", d.SCL},
	} {
		if p.pin < 0 || p.pin > 29 {
			return errcode.Wrap(errcode.UnknownPin, op, p.name)
		}
		if other, dup := seen[p.pin]; dup {
			return errcode.Wrap(errcode.PinInUse, op, p.name+" collides with "+other)
		}
		seen[p.pin] = p.name
	}

	if d.Width <= 0 || d.Height <= 0 || d.Cursor <= 0 {
		return errcode.Wrap(errcode.InvalidConfig, op, "display size and cursor must be positive")
	}
	if d.ThinMargin < 0 || d.ThickMargin < d.ThinMargin {
		return errcode.Wrap(errcode.InvalidConfig, op, "thick margin must be >= thin margin >= 0")
	}
	if d.Width-d.Cursor-d.ThickMargin <= 0 || d.Height-d.Cursor-d.ThickMargin <= 0 {
		return errcode.Wrap(errcode.InvalidConfig, op, "no room for the cursor inside the thick border")
	}
	if cfg.LED.Top == 0 || cfg.LED.FreqHz == 0 {
		return errcode.Wrap(errcode.InvalidConfig, op, "pwm top and frequency must be positive")
	}
	if cfg.LED.GreenDuty > cfg.LED.Top {
		return errcode.Wrap(errcode.InvalidConfig, op, "green_duty exceeds pwm top")
	}
	if cfg.TickMs == 0 {
		return errcode.Wrap(errcode.InvalidConfig, op, "tick_ms must be positive")
	}
	return nil
}
