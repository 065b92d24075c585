// Command mnist trains and evaluates a feedforward digit classifier on
// the MNIST dataset.
//
// Usage:
//
//	mnist train -config run.yaml [-model PATH] [-epochs N] [-lr F] [-seed N]
//	mnist infer -model PATH -images FILE -labels FILE [-index N]
//	mnist version
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Its-brito/neuralnetwork/internal/config"
	"github.com/Its-brito/neuralnetwork/internal/mnist"
	"github.com/Its-brito/neuralnetwork/internal/network"
	"github.com/Its-brito/neuralnetwork/internal/trainer"
)

const version = "v0.1.0"

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "train":
		runTrain(os.Args[2:])
	case "infer":
		runInfer(os.Args[2:])
	case "version":
		fmt.Printf("mnist %s\n", version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: mnist <train|infer|version> [flags]")
}

func runTrain(args []string) {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	configPath := fs.String("config", "run.yaml", "path to run configuration")
	modelPath := fs.String("model", "", "override model output path")
	epochs := fs.Int("epochs", 0, "override epoch count")
	lr := fs.Float64("lr", 0, "override learning rate")
	seed := fs.Int64("seed", 0, "override RNG seed")
	_ = fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg.ApplyOverrides(config.Overrides{
		ModelPath:    *modelPath,
		Epochs:       *epochs,
		LearningRate: float32(*lr),
		Seed:         *seed,
	})

	train, err := mnist.Load(cfg.TrainImages, cfg.TrainLabels)
	if err != nil {
		log.Fatalf("load training set: %v", err)
	}
	log.Printf("loaded training_samples=%d", len(train))

	var test []mnist.Sample
	if cfg.TestImages != "" && cfg.TestLabels != "" {
		test, err = mnist.Load(cfg.TestImages, cfg.TestLabels)
		if err != nil {
			log.Fatalf("load test set: %v", err)
		}
		log.Printf("loaded test_samples=%d", len(test))
	}

	net, err := trainer.Run(trainer.RunConfig{
		Train:        train,
		Test:         test,
		Topology:     cfg.Topology,
		Epochs:       cfg.Epochs,
		LearningRate: cfg.LearningRate,
		Seed:         cfg.Seed,
		LogEvery:     cfg.LogEvery,
		Augment: trainer.Augmentation{
			Copies:   cfg.Augment.Copies,
			MaxShift: cfg.Augment.MaxShift,
			MaxZoom:  cfg.Augment.MaxZoom,
		},
	})
	if err != nil {
		log.Fatalf("train: %v", err)
	}

	if err := net.Save(cfg.ModelPath); err != nil {
		log.Fatalf("save model: %v", err)
	}
	log.Printf("saved model=%s", cfg.ModelPath)
}

func runInfer(args []string) {
	fs := flag.NewFlagSet("infer", flag.ExitOnError)
	modelPath := fs.String("model", "model.bin", "path to saved model")
	images := fs.String("images", "", "IDX image file")
	labels := fs.String("labels", "", "IDX label file")
	index := fs.Int("index", 0, "sample index to inspect")
	_ = fs.Parse(args)

	net, err := network.Load(*modelPath)
	if err != nil {
		log.Fatalf("load model: %v", err)
	}

	samples, err := mnist.Load(*images, *labels)
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}
	if *index < 0 || *index >= len(samples) {
		log.Fatalf("index %d out of range (have %d samples)", *index, len(samples))
	}

	sample := samples[*index]
	probs := net.FeedForward(sample.Pixels)
	for digit, p := range probs {
		fmt.Printf("%d: %.6f\n", digit, p)
	}
	fmt.Printf("guess=%d target=%d\n", trainer.Argmax(probs), sample.Label)

	acc, loss := trainer.Evaluate(net, samples)
	fmt.Printf("accuracy=%.4f avg_loss=%.4f over %d samples\n", acc, loss, len(samples))
}
