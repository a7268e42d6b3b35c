//go:build ignore

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
)

// BuildTarget represents a buildable binary target
type BuildTarget struct {
	Name        string
	SourcePath  string
	BinaryName  string
	Description string
}

// Available build targets
var buildTargets = map[string]BuildTarget{
	"createtournaments": {
		Name:        "createtournaments",
		SourcePath:  "./cmd/createtournaments",
		BinaryName:  "createtournaments",
		Description: "Creates one batch of team battles and exits (cron entry point)",
	},
	"worker": {
		Name:        "worker",
		SourcePath:  "./cmd/worker",
		BinaryName:  "worker",
		Description: "Redis queue worker that runs and chains batches",
	},
	"enqueue": {
		Name:        "enqueue",
		SourcePath:  "./cmd/enqueue",
		BinaryName:  "enqueue",
		Description: "Queues a batch for the worker",
	},
	"function": {
		Name:        "function",
		SourcePath:  "./cmd/function",
		BinaryName:  "function",
		Description: "HTTP function triggered by Cloud Tasks",
	},
}

func main() {
	var (
		target = flag.String("target", "", "Target to build (createtournaments, worker, enqueue, function)")
		list   = flag.Bool("list", false, "List available build targets")
		all    = flag.Bool("all", false, "Build all available targets")
	)
	flag.Parse()

	// Show usage if no flags provided
	if len(os.Args) == 1 {
		showUsage()
		return
	}

	// List available targets
	if *list {
		listTargets()
		return
	}

	// Create bin directory if it doesn't exist
	binDir := "./bin"
	if err := os.MkdirAll(binDir, 0755); err != nil {
		log.Fatalf("Failed to create bin directory: %v", err)
	}

	// Build all targets
	if *all {
		buildAllTargets(binDir)
		return
	}

	// Build specific target
	if *target == "" {
		fmt.Println("Error: target flag is required")
		showUsage()
		os.Exit(1)
	}

	buildTarget(*target, binDir)
}

func showUsage() {
	fmt.Println("Build system for the team battle scheduler")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  go run build.go -target <target>  Build specific target")
	fmt.Println("  go run build.go -all              Build all targets")
	fmt.Println("  go run build.go -list             List available targets")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  go run build.go -target createtournaments")
	fmt.Println("  go run build.go -all")
	fmt.Println()
	fmt.Println("All binaries are saved to ./bin/")
}

func listTargets() {
	fmt.Println("Available build targets:")
	fmt.Println()
	for name, target := range buildTargets {
		fmt.Printf("  %-20s %s\n", name, target.Description)
		fmt.Printf("  %-20s Source: %s\n", "", target.SourcePath)
		fmt.Printf("  %-20s Binary: ./bin/%s\n", "", target.BinaryName)
		fmt.Println()
	}
}

func buildAllTargets(binDir string) {
	fmt.Println("Building all targets...")
	fmt.Println()

	success := 0
	total := len(buildTargets)

	for name := range buildTargets {
		if buildTarget(name, binDir) {
			success++
		}
	}

	fmt.Println()
	fmt.Printf("Build complete: %d/%d targets built successfully\n", success, total)
}

func buildTarget(targetName, binDir string) bool {
	target, exists := buildTargets[targetName]
	if !exists {
		fmt.Printf("Error: Unknown target '%s'\n", targetName)
		fmt.Println("Use -list to see available targets")
		return false
	}

	fmt.Printf("Building %s...\n", target.Name)

	// Check if source directory exists
	if _, err := os.Stat(target.SourcePath); os.IsNotExist(err) {
		fmt.Printf("Error: Source path does not exist: %s\n", target.SourcePath)
		return false
	}

	// Get absolute paths
	absOutputPath, err := filepath.Abs(filepath.Join(binDir, target.BinaryName))
	if err != nil {
		fmt.Printf("Error getting absolute output path: %v\n", err)
		return false
	}

	absSourcePath, err := filepath.Abs(target.SourcePath)
	if err != nil {
		fmt.Printf("Error getting absolute source path: %v\n", err)
		return false
	}

	cmd := exec.Command("go", "build", "-o", absOutputPath, absSourcePath)

	// Build from the module root
	cmd.Dir = "."

	// Set environment variables for local builds
	cmd.Env = append(os.Environ(),
		"CGO_ENABLED=0",
	)

	// Run the build
	output, err := cmd.CombinedOutput()
	if err != nil {
		fmt.Printf("Error building %s: %v\n", target.Name, err)
		if len(output) > 0 {
			fmt.Printf("Build output:\n%s\n", string(output))
		}
		return false
	}

	// Check if binary was created
	if _, err := os.Stat(absOutputPath); err != nil {
		fmt.Printf("Error: Binary was not created at %s\n", absOutputPath)
		return false
	}

	fmt.Printf("Successfully built %s -> %s\n", target.Name, absOutputPath)
	return true
}
