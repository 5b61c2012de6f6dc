package types

import "time"

// Config is the complete board and behaviour description for the tracker.
type Config struct {
	Pins    PinPlan     `json:"pins"`
	Display DisplayPlan `json:"display"`
	LED     LEDPlan     `json:"led"`
	Buttons ButtonPlan  `json:"buttons"`
	Log     LogPlan     `json:"log"`

	// TickMs is the control loop period.
	TickMs uint32 `json:"tick_ms"`
}

func (c Config) Tick() time.Duration { return time.Duration(c.TickMs) * time.Millisecond }

// PinPlan names every GPIO the firmware touches.
type PinPlan struct {
	AxisX    int `json:"axis_x"` // ADC GPIO (26..29)
	AxisY    int `json:"axis_y"`
	Joystick int `json:"joystick_sw"`
	Mode     int `json:"button_a"`
	Bootsel  int `json:"button_b"`
	Red      int `json:"red"`
	Green    int `json:"green"`
	Blue     int `json:"blue"`
}

// DisplayPlan describes the OLED and what is drawn on it.
type DisplayPlan struct {
	I2C     string `json:"i2c"` // "i2c0" or "i2c1"
	SDA     int    `json:"sda"`
	SCL     int    `json:"scl"`
	Hz      uint32 `json:"hz"`
	Address uint16 `json:"address"`

	Width  int `json:"width"`
	Height int `json:"height"`
	Cursor int `json:"cursor"` // side of the square cursor glyph

	// Border margins per style, in pixels.
	ThinMargin  int `json:"thin_margin"`
	ThickMargin int `json:"thick_margin"`
}

// LEDPlan configures the PWM-driven RGB LED.
type LEDPlan struct {
	FreqHz    uint64 `json:"freq_hz"`
	Top       uint16 `json:"top"`        // logical duty range 0..Top
	GreenDuty uint16 `json:"green_duty"` // duty applied while the thick border is shown
}

// ButtonPlan configures the three push buttons.
type ButtonPlan struct {
	DebounceMs uint16 `json:"debounce_ms"`
	// Shared selects one debounce clock for all buttons instead of one per button.
	Shared bool `json:"shared"`
}

func (b ButtonPlan) Debounce() time.Duration {
	return time.Duration(b.DebounceMs) * time.Millisecond
}

// LogPlan selects the log sink on MCU builds.
type LogPlan struct {
	UART string `json:"uart"` // "uart0", "uart1" or "" for USB console
	TX   int    `json:"tx"`
	RX   int    `json:"rx"`
	Baud uint32 `json:"baud"`
}
