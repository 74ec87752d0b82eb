// Hardware simulator: creates virtual serial pairs with socat and plays
// the car's boards so the receiver and transmitter binaries can run on
// a dev machine. It bridges the IR medium (transmitter codes are
// relayed to the receiver's IR line), answers sonar PINGs with a
// scripted approach-and-retreat distance profile, sinks motor tokens
// and streams a scripted joystick session.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"IrCar/internal/device"
	"IrCar/internal/util"
)

// distance profile the fake sonar walks through, one value per PING
const distanceScript = "120,90,60,35,25,18,12,15,NOECHO,45,80,120"

// joystick session the fake stick streams: neutral, forward, press the
// switch (smart-forward on), hold neutral, press again (off)
var joystickScript = []string{
	"512,512,0",
	"512,900,0", "512,900,0", "512,900,0",
	"512,512,1",
	"512,512,0", "512,512,0", "512,512,0", "512,512,0",
	"512,512,1",
	"512,512,0",
}

func main() {
	util.SetupLogger()

	dir := flag.String("dir", "tmp/virt", "directory for virtual serial links")
	baud := flag.Int("baud", 9600, "baud rate for all virtual devices")
	pingEvery := flag.Int("joyinterval", 50, "ms between joystick samples")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		log.Fatalf("mkdir %s: %v", *dir, err)
	}

	mgr := util.NewSocatManager()
	harness, err := mgr.CreateCarHarness(*dir)
	if err != nil {
		log.Fatalf("create harness: %v", err)
	}
	defer mgr.Cleanup()

	// socat needs a moment to materialize the links
	time.Sleep(500 * time.Millisecond)

	log.Printf("receiver devices:    -ir %s -motor %s -sonar %s", harness.IR, harness.Motor, harness.Sonar)
	log.Printf("transmitter devices: -joy %s -ir %s", harness.Joystick, harness.TxIR)

	stopCh := make(chan struct{})
	var wg sync.WaitGroup

	open := func(path string) *device.Serial {
		d, err := device.OpenSerial(path, *baud)
		if err != nil {
			log.Fatalf("open %s: %v", path, err)
		}
		return d
	}
	irOut := open(harness.SimIR)      // feeds decoded codes to the receiver
	txIn := open(harness.SimTxIR)     // what the transmitter emits
	motorIn := open(harness.SimMotor) // tokens from the receiver
	sonarIO := open(harness.SimSonar) // PING/echo exchange
	joyOut := open(harness.SimJoystick)
	defer func() {
		_ = irOut.Close()
		_ = txIn.Close()
		_ = motorIn.Close()
		_ = sonarIO.Close()
		_ = joyOut.Close()
	}()

	// IR medium: relay every code the transmitter sends to the receiver
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stopCh:
				return
			default:
			}
			line, err := txIn.ReadLine(200 * time.Millisecond)
			if err != nil {
				continue
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if err := irOut.WriteLine(line); err != nil {
				log.Printf("[ir-medium] relay err: %v", err)
			} else {
				log.Printf("[ir-medium] %s", line)
			}
		}
	}()

	// motor sink: log every token the receiver issues
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stopCh:
				return
			default:
			}
			tok, err := motorIn.ReadLine(200 * time.Millisecond)
			if err != nil {
				continue
			}
			if tok = strings.TrimSpace(tok); tok != "" {
				log.Printf("[motor] %s", tok)
			}
		}
	}()

	// sonar responder: one scripted distance per PING, then repeat
	wg.Add(1)
	go func() {
		defer wg.Done()
		script := strings.Split(distanceScript, ",")
		i := 0
		for {
			select {
			case <-stopCh:
				return
			default:
			}
			req, err := sonarIO.ReadLine(200 * time.Millisecond)
			if err != nil || strings.TrimSpace(req) != "PING" {
				continue
			}
			reply := script[i%len(script)]
			i++
			if err := sonarIO.WriteLine(reply); err != nil {
				log.Printf("[sonar] write err: %v", err)
			} else {
				log.Printf("[sonar] -> %s", reply)
			}
		}
	}()

	// joystick streamer: loop the scripted session
	wg.Add(1)
	go func() {
		defer wg.Done()
		tick := time.NewTicker(time.Duration(*pingEvery) * time.Millisecond)
		defer tick.Stop()
		i := 0
		for {
			select {
			case <-stopCh:
				return
			case <-tick.C:
				line := joystickScript[i%len(joystickScript)]
				i++
				if err := joyOut.WriteLine(line); err != nil {
					log.Printf("[joystick] write err: %v", err)
				}
			}
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("simulation shutting down...")
	close(stopCh)
	wg.Wait()
}
