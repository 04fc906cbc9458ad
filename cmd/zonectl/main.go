// zonectl fetches, exports, and imports zone documents through a running
// edudash server. It is the command-line counterpart of the dashboard's
// download/upload structure buttons.
//
// Usage:
//
//	zonectl [flags] fetch
//	zonectl [flags] export -out folder-structure.json
//	zonectl [flags] import -in fragment.json [-folder <folder-id>]
//	zonectl [flags] push -in document.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"edudash/internal/client"
	"edudash/internal/content"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "base URL of the edudash server")
	key := flag.String("key", "", "zone key (empty for the server default)")
	user := flag.String("user", "", "admin username (required for import/push)")
	pass := flag.String("pass", "", "admin password (required for import/push)")
	in := flag.String("in", "", "input JSON file")
	out := flag.String("out", "", "output JSON file")
	folder := flag.String("folder", "", "folder id to graft an imported fragment under (empty for root)")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	c, err := client.New(*server)
	if err != nil {
		fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch flag.Arg(0) {
	case "fetch":
		doc := c.FetchZone(ctx, *key)
		printJSON(doc)

	case "export":
		if *out == "" {
			fatal(fmt.Errorf("export requires -out"))
		}
		doc := c.FetchZone(ctx, *key)
		if err := writeJSONFile(*out, doc); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", *out)

	case "import":
		if *in == "" {
			fatal(fmt.Errorf("import requires -in"))
		}
		fragment, err := readDocument(*in)
		if err != nil {
			fatal(err)
		}
		if err := c.Login(ctx, *user, *pass); err != nil {
			fatal(err)
		}
		doc := c.FetchZone(ctx, *key)
		var folderID *string
		if *folder != "" {
			folderID = folder
		}
		merged := content.Import(doc.Contents, fragment.Contents, folderID)
		saved := content.Sync(merged, doc.Videos)
		report(c.SaveZone(ctx, saved, *key))

	case "push":
		if *in == "" {
			fatal(fmt.Errorf("push requires -in"))
		}
		doc, err := readDocument(*in)
		if err != nil {
			fatal(err)
		}
		if err := c.Login(ctx, *user, *pass); err != nil {
			fatal(err)
		}
		report(c.SaveZone(ctx, *doc, *key))

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", flag.Arg(0))
		flag.Usage()
		os.Exit(2)
	}
}

func readDocument(path string) (*content.ZoneData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc content.ZoneData
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &doc, nil
}

func writeJSONFile(path string, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

func printJSON(v interface{}) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(raw))
}

func report(res client.SaveResult) {
	if !res.OK {
		fatal(fmt.Errorf("save failed: %s", res.Error))
	}
	fmt.Println("saved")
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
