// Transmitter node: joystick samples in, IR command codes out, with the
// fixed repeat-send policy.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"IrCar/internal/core"
	"IrCar/internal/model"
	"IrCar/internal/util"
)

func main() {
	util.SetupLogger()

	id := flag.String("id", "TX01", "transmitter id")
	joyDev := flag.String("joy", "/dev/ttyUSB0", "joystick board serial device")
	joyBaud := flag.Int("joybaud", 9600, "joystick board baudrate")
	irDev := flag.String("ir", "/dev/ttyUSB1", "IR emitter module serial device")
	irBaud := flag.Int("irbaud", 9600, "IR emitter baudrate")
	repeats := flag.Int("repeats", 3, "sends per command")
	gap := flag.Int("gap", 40, "ms between repeats")
	sample := flag.Int("sample", 50, "joystick sampling period ms")
	hold := flag.Int("hold", 150, "resend period for a held direction ms")
	flag.Parse()

	remote, err := core.NewRemote(model.TransmitterConfig{
		ID:            *id,
		JoystickDev:   *joyDev,
		JoystickBaud:  *joyBaud,
		IRDev:         *irDev,
		IRBaud:        *irBaud,
		RepeatCount:   *repeats,
		RepeatGapMs:   *gap,
		SampleEveryMs: *sample,
		HoldRepeatMs:  *hold,
	})
	if err != nil {
		log.Fatalf("transmitter: %v", err)
	}
	if err := remote.Start(); err != nil {
		log.Fatalf("transmitter start: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("transmitter shutting down...")
	remote.Stop()
}
