// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/devblok/kengine/utility/kar"
)

var currentUserName = "unknown"

func init() {
	if u, err := user.Current(); err == nil {
		currentUserName = u.Name
	}
}

var (
	author   = flag.String("author", "", "Set the author of the package when compressing (default current user)")
	version  = flag.Int64("version", 1, "Archive version number to create it with")
	extract  = flag.String("e", "", "Extract the file given, or every file with \"*\"")
	compress = flag.String("c", "", "Compress the given file/folder")
	list     = flag.Bool("l", false, "List the files in the archive")
	archive  = flag.String("f", "out.kar", "Archive file")
	outDir   = flag.String("o", ".", "Directory to extract into")
	silent   = flag.Bool("s", false, "Silent")
)

func main() {
	flag.Parse()
	if *silent {
		log.SetLevel(log.WarnLevel)
	}

	ops := 0
	for _, set := range []bool{*extract != "", *compress != "", *list} {
		if set {
			ops++
		}
	}
	if ops == 0 {
		flag.PrintDefaults()
		return
	}
	if ops > 1 {
		log.Fatal("only one operation at a time")
	}

	var err error
	switch {
	case *compress != "":
		name := *author
		if name == "" {
			name = currentUserName
		}
		err = compressFiles(*compress, *archive, kar.Header{
			Author:      name,
			DateCreated: time.Now().Unix(),
			Version:     *version,
		})
	case *extract != "":
		err = extractFiles(*archive, *extract, *outDir)
	case *list:
		err = listFiles(*archive, os.Stdout)
	}
	if err != nil {
		log.WithError(err).Fatal("kar failed")
	}
}

func compressFiles(src, dst string, header kar.Header) error {
	if _, err := os.Stat(dst); err == nil {
		return errors.New("destination file exists, will not overwrite")
	}

	builder, err := kar.NewBuilder(header)
	if err != nil {
		return err
	}
	defer builder.Close()

	if err := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		name, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if name == "." {
			name = filepath.Base(path)
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		log.WithField("file", name).Info("adding")
		return builder.Add(filepath.ToSlash(name), f)
	}); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	n, err := builder.WriteTo(out)
	if err != nil {
		out.Close()
		return err
	}
	log.WithFields(log.Fields{
		"archive": dst,
		"files":   builder.Len(),
		"bytes":   n,
	}).Info("archive written")
	return out.Close()
}

func extractFiles(src, name, dir string) error {
	ar, err := kar.OpenFile(src)
	if err != nil {
		return err
	}
	defer ar.Close()

	names := []string{name}
	if name == "*" {
		names = ar.Names()
	}
	for _, n := range names {
		if err := extractFile(ar, n, dir); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(ar *kar.Archive, name, dir string) error {
	r, err := ar.Open(name)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, filepath.FromSlash(name))
	if rel, err := filepath.Rel(dir, path); err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("%s: outside of %s", name, dir)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	log.WithFields(log.Fields{
		"file": name,
		"to":   path,
	}).Info("extracted")
	return f.Close()
}

func listFiles(src string, w io.Writer) error {
	ar, err := kar.OpenFile(src)
	if err != nil {
		return err
	}
	defer ar.Close()

	h := ar.Header()
	fmt.Fprintf(w, "author: %s, version: %d, created: %s\n",
		h.Author, h.Version, time.Unix(h.DateCreated, 0).Format(time.RFC3339))
	for _, e := range h.Index {
		fmt.Fprintf(w, "%10d %10d %s\n", e.Size, e.CompressedSize, e.Name)
	}
	return nil
}
