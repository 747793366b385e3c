/*
 * This file is part of the Go Cesium Point Cloud Tiler distribution (https://github.com/mfbonfigli/gocesiumtiler).
 * Copyright (c) 2019 Massimo Federico Bonfigli - m.federico.bonfigli@gmail.com
 *
 * This program is free software; you can redistribute it and/or modify it
 * under the terms of the GNU Lesser General Public License Version 3 as
 * published by the Free Software Foundation;
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
 * Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program. If not, see <http://www.gnu.org/licenses/>.
 *
 * This software also uses third party components. You can find information
 * on their credits and licensing in the file LICENSE-3RD-PARTIES.md that
 * you should have received togheter with the source code.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/ecopia-map/quadtree_indexer/internal/data"
	"github.com/ecopia-map/quadtree_indexer/internal/indexer"
	"github.com/ecopia-map/quadtree_indexer/internal/point_loader"
	"github.com/ecopia-map/quadtree_indexer/pkg"
	"github.com/ecopia-map/quadtree_indexer/pkg/algorithm_manager/std_algorithm_manager"
	"github.com/ecopia-map/quadtree_indexer/tools"
)

const VERSION = "1.0.0"

const logo = `
                    _ _
  __ _ _  _ __ _ __| | |_ _ _ ___ ___
 / _' | || / _' / _' |  _| '_/ -_) -_)
 \__, |\_,_\__,_\__,_|\__|_| \___\___|
    |_|  A region quadtree point indexer written in golang
         Copyright YYYY - ecopia-map
`

const commands = "[index|depth|neighbors|sample]"

func main() {
	defer glog.Flush()
	flag.Set("logtostderr", "true")

	flagsGlobal := tools.ParseFlagsGlobal()
	glog.V(1).Infoln(tools.FmtJSONString(flagsGlobal))

	if *flagsGlobal.Help {
		showHelp()
		return
	}
	if *flagsGlobal.Version {
		printVersion()
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		glog.Fatal("Please specify a subcommand " + commands + ".")
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case indexer.CommandIndex:
		mainCommandIndex(args)
	case indexer.CommandDepth, indexer.CommandNeighbors, indexer.CommandSample:
		mainCommandQuery(cmd, args)
	default:
		glog.Fatalf("Unrecognized command [%q]. Command must be one of %s", cmd, commands)
	}
}

func mainCommandIndex(args []string) {
	flags := tools.ParseFlagsForCommandIndex(args)

	if *flags.Help {
		showHelp()
		return
	}

	if *flags.Silent {
		tools.DisableLogger()
	} else {
		printLogo()
	}

	opts, err := flags.ToIndexerOptions(indexer.CommandIndex)
	if err != nil {
		glog.Fatal("Error parsing input parameters: ", err)
	}
	opts.IndexOptions = &indexer.IndexOptions{
		Output:      *flags.Output,
		MetricsFile: *flags.MetricsFile,
		Print:       *flags.Print,
	}

	if msg, res := validateOptions(opts); !res {
		glog.Fatal("Error parsing input parameters: " + msg)
	}
	if opts.Input == "" {
		glog.Fatal("Error parsing input parameters: input file/folder is required")
	}

	defer timeTrack(time.Now(), "indexing")
	err = newIndexer(opts).RunIndex(context.Background(), opts)
	if err != nil {
		glog.Fatal("Error while indexing: ", err)
	}
	tools.LogOutput("Indexing Completed")
}

func mainCommandQuery(command string, args []string) {
	flags := tools.ParseFlagsForCommandQuery(command, args)

	if *flags.Help {
		showHelp()
		return
	}

	// query results go to stdout, progress messages would mix with them
	tools.DisableLogger()

	opts, err := flags.ToIndexerOptions(command)
	if err != nil {
		glog.Fatal("Error parsing input parameters: ", err)
	}
	opts.QueryOptions = &indexer.QueryOptions{
		Count: *flags.Count,
		Seed:  *flags.Seed,
	}
	if command != indexer.CommandSample {
		point, err := point_loader.ParseLine(*flags.Point)
		if err != nil || point == nil {
			glog.Fatalf("Error parsing input parameters: invalid point %q", *flags.Point)
		}
		opts.QueryOptions.Point = point
	}

	if msg, res := validateOptions(opts); !res {
		glog.Fatal("Error parsing input parameters: " + msg)
	}

	ix := newIndexer(opts)
	switch command {
	case indexer.CommandDepth:
		depth, err := ix.RunDepth(opts)
		if err != nil {
			glog.Fatal("Error while querying: ", err)
		}
		fmt.Println(depth)
	case indexer.CommandNeighbors:
		neighbors, err := ix.RunNeighbors(opts)
		if err != nil {
			glog.Fatal("Error while querying: ", err)
		}
		for _, neighbor := range neighbors {
			fmt.Println(neighbor)
		}
	case indexer.CommandSample:
		_, err := ix.RunSample(opts, func(p data.Point) bool {
			fmt.Println(p)
			return true
		})
		if err != nil {
			glog.Fatal("Error while sampling: ", err)
		}
	}
}

func newIndexer(opts *indexer.IndexerOptions) *pkg.Indexer {
	return pkg.NewIndexer(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts))
}

// Validates the input options provided to the command line tool checking
// that the input file/folder exists and the tree settings are consistent
func validateOptions(opts *indexer.IndexerOptions) (string, bool) {
	if opts.Input != "" {
		if _, err := os.Stat(opts.Input); os.IsNotExist(err) {
			return "Input file/folder not found", false
		}
	}

	if _, err := opts.Tree.BoundingBox(); err != nil {
		return err.Error(), false
	}

	if opts.Tree.NodeCapacity < 1 {
		return "node-capacity must be at least 1", false
	}

	if opts.QueryOptions != nil && opts.Command == indexer.CommandSample && opts.QueryOptions.Count < 0 {
		return "count cannot be negative", false
	}

	return "", true
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	tools.LogOutput(fmt.Sprintf("%s took %s", name, elapsed))
}

func printLogo() {
	fmt.Println(strings.ReplaceAll(logo, "YYYY", strconv.Itoa(time.Now().Year())))
}

func showHelp() {
	printLogo()
	fmt.Println("***")
	fmt.Println("quadtree_indexer loads 2D point files into a region quadtree, queries it and exports it as a folder hierarchy")
	printVersion()
	fmt.Println("***")
	fmt.Println("")
	fmt.Println("Usage: quadtree_indexer " + commands + " [flags]")
	fmt.Println("Run a command with -help to list its flags.")
	fmt.Println("")
	fmt.Println("Global flags: ")
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
}

func printVersion() {
	fmt.Println("v." + VERSION)
}
