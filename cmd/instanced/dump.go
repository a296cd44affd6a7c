// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"cogentcore.org/instanced/config"
	"cogentcore.org/instanced/math32"
	"cogentcore.org/instanced/objio"
	"cogentcore.org/instanced/pipeline"
	"cogentcore.org/instanced/tree"
	"cogentcore.org/instanced/xyz"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Summary describes the contents of an object stream.
type Summary struct {
	Version string     `yaml:"version"`
	Objects int        `yaml:"objects"`
	Nodes   []NodeInfo `yaml:"nodes"`
	Lists   []ListInfo `yaml:"lists,omitempty"`
}

// NodeInfo describes one node of a scene in a stream.
type NodeInfo struct {
	Path      string     `yaml:"path"`
	Type      string     `yaml:"type"`
	Pos       [3]float32 `yaml:"pos,flow"`
	Instances int        `yaml:"instances,omitempty"`
	List      int        `yaml:"list,omitempty"`
	Visits    int        `yaml:"visits"`
	Bounds    [6]float32 `yaml:"bounds,flow"`
}

// ListInfo describes one instance list, which can be shared by nodes.
type ListInfo struct {
	ID        int      `yaml:"id"`
	Instances int      `yaml:"instances"`
	Users     []string `yaml:"users,flow"`
}

// Dump prints a [Summary] of the stream file, and keeps printing
// one whenever the file changes if [config.Dump.Watch] is set.
func Dump(c *config.Config) error {
	if err := dumpFile(c, os.Stdout); err != nil {
		return err
	}
	if !c.Dump.Watch {
		return nil
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return watch(ctx, c, os.Stdout)
}

func dumpFile(c *config.Config, w io.Writer) error {
	f, err := os.Open(c.Stream.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	sum, err := Summarize(f)
	if err != nil {
		return fmt.Errorf("dump %s: %w", c.Stream.Path, err)
	}
	return WriteSummary(w, sum, c.Dump.Format)
}

// watch dumps the stream file again after every change to it,
// until ctx is done. It watches the directory, so that files
// replaced by rename are still seen.
func watch(ctx context.Context, c *config.Config, w io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	path := filepath.Clean(c.Stream.Path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	slog.Info("watching stream", "stream", path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-watcher.Errors:
			return err
		case ev := <-watcher.Events:
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := dumpFile(c, w); err != nil {
				slog.Error("dump", "err", err)
			}
		}
	}
}

// Summarize reads all of the batches of the given stream
// and describes the scenes in them.
func Summarize(r io.Reader) (*Summary, error) {
	or := objio.NewReader(r)
	roots, err := or.ReadAll()
	if err != nil {
		return nil, err
	}
	sum := &Summary{
		Version: fmt.Sprintf("%d.%d", or.Major, or.Minor),
		Objects: or.NumObjects(),
	}
	lists := map[*xyz.InstanceList]int{}
	for _, obj := range roots {
		switch root := obj.(type) {
		case xyz.Node:
			sum.addScene(root, lists)
		case *xyz.InstanceList:
			sum.addList(root, "", lists)
		}
	}
	return sum, nil
}

func (sum *Summary) addScene(root xyz.Node, lists map[*xyz.InstanceList]int) {
	th := pipeline.MainThread
	trav := xyz.NewCullTraverser(th)
	trav.Traverse(root)
	visits := map[tree.Node]int{}
	for _, v := range trav.Visits {
		visits[v.Node]++
	}
	root.AsTree().WalkDown(func(n tree.Node) bool {
		xn, nb := xyz.AsNode(n)
		if xn == nil {
			return tree.Continue
		}
		ni := NodeInfo{
			Path:   nb.Path(),
			Type:   nb.NodeType().ShortName(),
			Pos:    vec3(nb.Transform(th).Pos()),
			Visits: visits[n],
		}
		if bb, ok := xyz.TightBounds(xn, th); ok {
			ni.Bounds = box3(bb)
		}
		if in, ok := n.(*xyz.InstancedNode); ok {
			ni.Instances = in.NumInstances(th)
			ni.List = sum.addList(in.Instances(th), ni.Path, lists)
		}
		sum.Nodes = append(sum.Nodes, ni)
		return tree.Continue
	})
}

// addList records that the given node path uses the given list,
// returning the id of the list.
func (sum *Summary) addList(il *xyz.InstanceList, user string, lists map[*xyz.InstanceList]int) int {
	id, ok := lists[il]
	if !ok {
		id = len(lists) + 1
		lists[il] = id
		sum.Lists = append(sum.Lists, ListInfo{ID: id, Instances: il.Len()})
	}
	if user != "" {
		sum.Lists[id-1].Users = append(sum.Lists[id-1].Users, user)
	}
	return id
}

// WriteSummary writes the summary to w in the given format,
// which is text or yaml.
func WriteSummary(w io.Writer, sum *Summary, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		ye := yaml.NewEncoder(w)
		ye.SetIndent(2)
		if err := ye.Encode(sum); err != nil {
			return err
		}
		return ye.Close()
	case "text", "":
		var b strings.Builder
		fmt.Fprintf(&b, "stream version %s, %d objects\n", sum.Version, sum.Objects)
		for _, ni := range sum.Nodes {
			fmt.Fprintf(&b, "%-32s %-20s pos %v visits %d", ni.Path, ni.Type, ni.Pos, ni.Visits)
			if ni.List > 0 {
				fmt.Fprintf(&b, " list %d (%d instances)", ni.List, ni.Instances)
			}
			b.WriteString("\n")
		}
		for _, li := range sum.Lists {
			fmt.Fprintf(&b, "list %d: %d instances, used by %s\n", li.ID, li.Instances, strings.Join(li.Users, ", "))
		}
		_, err := io.WriteString(w, b.String())
		return err
	}
	return fmt.Errorf("dump: unknown format %q", format)
}

func vec3(v math32.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func box3(b math32.Box3) [6]float32 {
	return [6]float32{b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z}
}
