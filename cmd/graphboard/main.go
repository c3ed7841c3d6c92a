/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"graphboard/internal/crash"
	"graphboard/internal/graph"
	applog "graphboard/internal/log"
	"graphboard/internal/render"
	"graphboard/internal/ui"
	"graphboard/internal/version"
)

func usage() {
	fmt.Println("GraphBoard — node graph editor")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  graphboard version|-v|--version            Show version")
	fmt.Println("  graphboard open <board.json>               Validate a board file and print a summary")
	fmt.Println("  graphboard preview <board.json> <out.png>  Render a board to a PNG image")
	fmt.Println("  graphboard ui [<board.json>]               Launch desktop UI (build with -tags fyne for full UI)")
}

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	boardPath := ""
	defer crash.Recover(&boardPath)

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("GraphBoard — node graph editor")
			fmt.Println(version.String())
			return
		case "open":
			if len(args) < 3 {
				fmt.Println("open requires <board.json>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			boardPath = abs
			l.Info("open board", slog.String("path", abs))
			doc, err := graph.Load(abs)
			if err != nil {
				l.Error("open failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Printf("Opened board: %s\n", doc.Name)
			fmt.Printf("Nodes: %d\n", len(doc.Nodes))
			fmt.Printf("Edges: %d\n", len(doc.Edges))
			return
		case "preview":
			if len(args) < 4 {
				fmt.Println("preview requires <board.json> and <out.png>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			out, _ := filepath.Abs(args[3])
			boardPath = abs
			l.Info("preview board", slog.String("path", abs), slog.String("out", out))
			doc, err := graph.Load(abs)
			if err != nil {
				l.Error("open before preview failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if err := render.WritePNG(doc, out, render.Options{}); err != nil {
				l.Error("preview failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Wrote", out)
			return
		case "ui":
			if len(args) >= 3 {
				boardPath, _ = filepath.Abs(args[2])
			}
			if err := ui.Run(boardPath); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}
