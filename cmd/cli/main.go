// Command nasch-engine runs the multi-lane traffic automaton and writes the
// SimulationLog JSON to stdout. Optionally it renders the run as an MJPEG
// heat-map animation.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	log "github.com/sirupsen/logrus"

	"github.com/cxd309/nasch-engine/internal/engine"
	"github.com/cxd309/nasch-engine/internal/heatmap"
)

func main() {
	parser := argparse.NewParser("nasch-engine", "Multi-lane Nagel-Schreckenberg traffic simulator")
	lanes := parser.Int("l", "lanes", &argparse.Options{Default: 7, Help: "Number of lanes"})
	length := parser.Int("n", "length", &argparse.Options{Default: 300, Help: "Road length in cells"})
	cars := parser.Int("c", "cars", &argparse.Options{Default: 60, Help: "Cars per lane"})
	ticks := parser.Int("t", "ticks", &argparse.Options{Default: 1000, Help: "Number of ticks to run"})
	seed := parser.Int("s", "seed", &argparse.Options{Default: 0, Help: "Random seed (0 = time-derived)"})
	noLC := parser.Flag("", "no-lane-changes", &argparse.Options{Help: "Disable lane changing"})
	video := parser.String("o", "video", &argparse.Options{Help: "Write a heat-map animation to this AVI file"})
	cellSize := parser.Int("", "cell-size", &argparse.Options{Default: 4, Help: "Pixels per cell in the animation"})
	fps := parser.Int("", "fps", &argparse.Options{Default: 10, Help: "Animation frames per second"})
	quiet := parser.Flag("q", "quiet", &argparse.Options{Help: "Suppress crash-event logging"})

	if err := parser.Parse(os.Args); err != nil {
		fmt.Fprint(os.Stderr, parser.Usage(err))
		os.Exit(1)
	}

	log.SetOutput(os.Stderr)
	if *quiet {
		log.SetLevel(log.ErrorLevel)
	}

	input := engine.SimulationInput{Meta: engine.SimulationMeta{
		NumLanes:    *lanes,
		RoadLength:  *length,
		CarsPerLane: *cars,
		Ticks:       *ticks,
		Seed:        int64(*seed),
		LaneChanges: !*noLC,
	}}

	eng, err := engine.New(input)
	if err != nil {
		log.WithError(err).Fatal("invalid simulation input")
	}

	simLog := eng.Run()

	out, err := json.Marshal(simLog)
	if err != nil {
		log.WithError(err).Fatal("marshaling simulation log")
	}
	fmt.Println(string(out))

	if *video != "" {
		if err := writeVideo(*video, simLog, *cellSize, int32(*fps)); err != nil {
			log.WithError(err).Fatal("writing animation")
		}
	}
}

// writeVideo renders every logged tick as one animation frame.
func writeVideo(path string, simLog engine.SimulationLog, cellSize int, fps int32) error {
	v, err := heatmap.NewVideo(path, simLog.Meta.NumLanes, simLog.Meta.RoadLength, cellSize, fps)
	if err != nil {
		return err
	}
	for _, row := range simLog.Output {
		if err := v.AddFrame(row.Grid); err != nil {
			v.Close()
			return fmt.Errorf("tick %d: %w", row.Tick, err)
		}
	}
	return v.Close()
}
