package tools

import (
	"flag"

	"github.com/golang/glog"

	"github.com/ecopia-map/quadtree_indexer/internal/indexer"
)

type FlagsGlobal struct {
	Help    *bool `json:"help"`
	Version *bool `json:"version"`
}

type TreeFlags struct {
	Input                     *string  `json:"input"`
	Config                    *string  `json:"config"`
	Srid                      *int     `json:"srid"`
	TreeSrid                  *int     `json:"tree_srid"`
	OffsetX                   *float64 `json:"offset_x"`
	OffsetY                   *float64 `json:"offset_y"`
	X                         *float64 `json:"x"`
	Y                         *float64 `json:"y"`
	XMax                      *float64 `json:"x_max"`
	YMax                      *float64 `json:"y_max"`
	NodeCapacity              *int     `json:"node_capacity"`
	Strict                    *bool    `json:"strict"`
	MaxPoints                 *int64   `json:"max_points"`
	FolderProcessing          *bool    `json:"folder"`
	RecursiveFolderProcessing *bool    `json:"recursive"`

	// names of the flags explicitly given on the command line
	set map[string]bool
}

type FlagsForCommandIndex struct {
	TreeFlags
	Output      *string
	MetricsFile *string
	Print       *bool
	Silent      *bool
	Help        *bool
}

type FlagsForCommandQuery struct {
	TreeFlags
	Point *string
	Count *int
	Seed  *int64
	Help  *bool
}

// Returns true if the flag, by name or shorthand, was given on the command line
func (f *TreeFlags) IsSet(name string) bool {
	return f.set[name]
}

func ParseFlagsGlobal() FlagsGlobal {
	help := defineBoolFlag("help", "h", false, "Displays this help.")
	version := defineBoolFlag("version", "", false, "Displays the version of quadtree_indexer.")

	flag.Parse()

	return FlagsGlobal{
		Help:    help,
		Version: version,
	}
}

func ParseFlagsForCommandIndex(args []string) FlagsForCommandIndex {
	glog.V(1).Infoln(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-index", flag.ExitOnError)

	treeFlags := defineTreeFlags(flagCommand)
	output := defineStringFlagCommand(flagCommand, "output", "o", "", "Specifies the output folder where to export the tree. The export is skipped when empty.")
	metricsFile := defineStringFlagCommand(flagCommand, "metrics-file", "", "", "Writes the tree metrics to this Prometheus textfile.")
	printTree := defineBoolFlagCommand(flagCommand, "print", "p", false, "Prints the tree structure.")
	silent := defineBoolFlagCommand(flagCommand, "silent", "s", false, "Use to suppress all the non-error messages.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")

	flagCommand.Parse(args)
	treeFlags.set = visitedFlags(flagCommand)

	return FlagsForCommandIndex{
		TreeFlags:   treeFlags,
		Output:      output,
		MetricsFile: metricsFile,
		Print:       printTree,
		Silent:      silent,
		Help:        help,
	}
}

func ParseFlagsForCommandQuery(command string, args []string) FlagsForCommandQuery {
	glog.V(1).Infoln(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-"+command, flag.ExitOnError)

	treeFlags := defineTreeFlags(flagCommand)
	point := defineStringFlagCommand(flagCommand, "point", "", "", "Coordinates of the queried point, e.g. '12,40'.")
	count := defineIntFlagCommand(flagCommand, "count", "c", 1, "Number of distinct random points to draw.")
	seed := defineInt64FlagCommand(flagCommand, "seed", "", 0, "Seed of the random source. 0 seeds from the current time.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")

	flagCommand.Parse(args)
	treeFlags.set = visitedFlags(flagCommand)

	return FlagsForCommandQuery{
		TreeFlags: treeFlags,
		Point:     point,
		Count:     count,
		Seed:      seed,
		Help:      help,
	}
}

func defineTreeFlags(flagCommand *flag.FlagSet) TreeFlags {
	return TreeFlags{
		Input:                     defineStringFlagCommand(flagCommand, "input", "i", "", "Specifies the input point file/folder."),
		Config:                    defineStringFlagCommand(flagCommand, "config", "", "", "YAML file with the tree settings. Flags given explicitly take precedence."),
		Srid:                      defineIntFlagCommand(flagCommand, "srid", "e", 0, "EPSG srid code of input points. 0 means points are already in the tree frame."),
		TreeSrid:                  defineIntFlagCommand(flagCommand, "tree-srid", "", 3395, "EPSG srid code of the tree frame, used when -srid is set."),
		OffsetX:                   defineFloat64FlagCommand(flagCommand, "offset-x", "", 0, "Offset added to X once the point is in the tree frame."),
		OffsetY:                   defineFloat64FlagCommand(flagCommand, "offset-y", "", 0, "Offset added to Y once the point is in the tree frame."),
		X:                         defineFloat64FlagCommand(flagCommand, "x", "", 0, "Lower X bound of the tree."),
		Y:                         defineFloat64FlagCommand(flagCommand, "y", "", 0, "Lower Y bound of the tree."),
		XMax:                      defineFloat64FlagCommand(flagCommand, "x-max", "", 100, "Upper X bound of the tree."),
		YMax:                      defineFloat64FlagCommand(flagCommand, "y-max", "", 100, "Upper Y bound of the tree."),
		NodeCapacity:              defineIntFlagCommand(flagCommand, "node-capacity", "n", 4, "Number of points a leaf holds before being subdivided."),
		Strict:                    defineBoolFlagCommand(flagCommand, "strict", "", false, "Fails on points outside the tree bound instead of skipping them."),
		MaxPoints:                 defineInt64FlagCommand(flagCommand, "max-points", "m", 0, "Maximum number of points loaded per file. 0 means no limit."),
		FolderProcessing:          defineBoolFlagCommand(flagCommand, "folder", "f", false, "Enables processing of all point files from input folder. Input must be a folder if specified"),
		RecursiveFolderProcessing: defineBoolFlagCommand(flagCommand, "recursive", "r", false, "Enables recursive lookup for all point files inside the subfolders"),
	}
}

// Fills the options from the flags. Values of a config file, if any, are applied first and then
// overridden by the flags explicitly set.
func (f *TreeFlags) ToIndexerOptions(command string) (*indexer.IndexerOptions, error) {
	opts := &indexer.IndexerOptions{
		Input:            *f.Input,
		FolderProcessing: *f.FolderProcessing,
		Recursive:        *f.RecursiveFolderProcessing,
		TreeSrid:         *f.TreeSrid,
		Command:          command,
	}

	if *f.Config != "" {
		config, err := indexer.LoadConfigFile(*f.Config)
		if err != nil {
			return nil, err
		}
		opts.ApplyConfigFile(config)
	}

	if f.IsSet("srid") || f.IsSet("e") {
		opts.Srid = *f.Srid
	}
	if f.IsSet("tree-srid") {
		opts.TreeSrid = *f.TreeSrid
	}
	if f.IsSet("offset-x") {
		opts.OffsetX = *f.OffsetX
	}
	if f.IsSet("offset-y") {
		opts.OffsetY = *f.OffsetY
	}
	if f.IsSet("x") {
		opts.Tree.X = f.X
	}
	if f.IsSet("y") {
		opts.Tree.Y = f.Y
	}
	if f.IsSet("x-max") {
		opts.Tree.XMax = f.XMax
	}
	if f.IsSet("y-max") {
		opts.Tree.YMax = f.YMax
	}
	if f.IsSet("node-capacity") || f.IsSet("n") || opts.Tree.NodeCapacity == 0 {
		opts.Tree.NodeCapacity = *f.NodeCapacity
	}
	if f.IsSet("strict") {
		opts.Strict = *f.Strict
	}
	if f.IsSet("max-points") || f.IsSet("m") {
		opts.MaxPoints = *f.MaxPoints
	}

	return opts, nil
}

func visitedFlags(flagCommand *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	flagCommand.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

func defineBoolFlag(name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flag.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineStringFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flagCommand.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineIntFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	flagCommand.IntVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.IntVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineInt64FlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue int64, usage string) *int64 {
	var output int64
	flagCommand.Int64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Int64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineFloat64FlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	flagCommand.Float64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Float64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineBoolFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flagCommand.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}
