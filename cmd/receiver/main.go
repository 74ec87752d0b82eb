// Receiver node: decoded IR commands in, motor/buzzer tokens out, with
// the smart-forward obstacle avoidance loop and a status server.
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

	id := flag.String("id", "CAR01", "car id")
	irDev := flag.String("ir", "/dev/ttyUSB0", "IR receiver module serial device")
	irBaud := flag.Int("irbaud", 9600, "IR receiver baudrate")
	motorDev := flag.String("motor", "/dev/ttyUSB1", "motor board serial device")
	motorBaud := flag.Int("motorbaud", 9600, "motor board baudrate")
	sonarDev := flag.String("sonar", "/dev/ttyUSB2", "ultrasonic board serial device")
	sonarBaud := flag.Int("sonarbaud", 9600, "ultrasonic board baudrate")
	silence := flag.Int("silence", 200, "manual-silence watchdog timeout ms")
	cadence := flag.Int("cadence", 300, "obstacle check interval ms")
	threshold := flag.Float64("threshold", 20, "obstacle threshold cm")
	poll := flag.Int("poll", 10, "control loop poll interval ms")
	statusAddr := flag.String("status", ":8090", "status server address (empty to disable)")
	journal := flag.String("journal", "tmp/events.db", "event journal path (empty to disable)")
	flag.Parse()

	car, err := core.NewCar(model.ReceiverConfig{
		ID:                      *id,
		IRDev:                   *irDev,
		IRBaud:                  *irBaud,
		MotorDev:                *motorDev,
		MotorBaud:               *motorBaud,
		SonarDev:                *sonarDev,
		SonarBaud:               *sonarBaud,
		SilenceTimeoutMs:        *silence,
		ObstacleCheckIntervalMs: *cadence,
		ObstacleThresholdCm:     *threshold,
		PollIntervalMs:          *poll,
		StatusAddr:              *statusAddr,
		JournalPath:             *journal,
	})
	if err != nil {
		log.Fatalf("receiver: %v", err)
	}
	if err := car.Start(); err != nil {
		log.Fatalf("receiver start: %v", err)
	}

	// wait for Ctrl+C or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("receiver shutting down...")
	car.Stop()
}
