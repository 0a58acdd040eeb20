package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/zanvidmar/lostfound/internal/config"
	"github.com/zanvidmar/lostfound/internal/lostfound"
	"github.com/zanvidmar/lostfound/internal/model"
)

const usage = `Usage: lostfound <command> [flags]

Commands:
  init      create the data directory skeleton
  register  create an account
  post      post a lost or found item report
  list      list reports, newest first
  search    list reports matching a search term and/or type
  contact   look up a poster's contact details
  resolve   mark one of your reports as resolved
  delete    delete one of your reports

The data directory defaults to $LOSTFOUND_DATA_DIR (or ./data) and can be
overridden per command with -data. Run 'lostfound <command> -h' for flags.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	commands := map[string]func(cfg config.Config, log zerolog.Logger, args []string) error{
		"init":     cmdInit,
		"register": cmdRegister,
		"post":     cmdPost,
		"list":     cmdList,
		"search":   cmdSearch,
		"contact":  cmdContact,
		"resolve":  cmdResolve,
		"delete":   cmdDelete,
	}

	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n%s", os.Args[1], usage)
		os.Exit(1)
	}

	if err := run(cfg, log, os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func cmdInit(cfg config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dataDir := fs.String("data", cfg.DataDir, "path to the shared data directory")
	fs.Parse(args)

	if err := lostfound.New(*dataDir, log).Init(); err != nil {
		return err
	}
	fmt.Printf("Data directory ready: %s\n", *dataDir)
	return nil
}

func cmdRegister(cfg config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	dataDir := fs.String("data", cfg.DataDir, "path to the shared data directory")
	username := fs.String("user", "", "username")
	password := fs.String("password", "", "password")
	contact := fs.String("contact", "", "contact info (email or phone)")
	fs.Parse(args)

	if *username == "" || *password == "" {
		return errors.New("-user and -password are required")
	}

	if err := lostfound.New(*dataDir, log).Register(*username, *password, *contact); err != nil {
		return err
	}
	fmt.Printf("Registered %s\n", *username)
	return nil
}

func cmdPost(cfg config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("post", flag.ExitOnError)
	dataDir := fs.String("data", cfg.DataDir, "path to the shared data directory")
	username := fs.String("user", "", "username")
	password := fs.String("password", "", "password")
	title := fs.String("title", "", "item title")
	itemType := fs.String("type", string(model.TypeLost), "Lost or Found")
	description := fs.String("description", "", "item description")
	location := fs.String("location", "", "where the item was lost or found")
	date := fs.String("date", "", "date lost/found as YYYY-MM-DD (default today)")
	imagePath := fs.String("image", "", "path to a JPEG or PNG photo (optional)")
	fs.Parse(args)

	svc := lostfound.New(*dataDir, log)
	if err := login(svc, *username, *password); err != nil {
		return err
	}

	var content []byte
	if *imagePath != "" {
		var err error
		if content, err = os.ReadFile(*imagePath); err != nil {
			return fmt.Errorf("reading image: %w", err)
		}
	}

	item, err := svc.PostItem(lostfound.NewItem{
		Title:         *title,
		Type:          model.ItemType(*itemType),
		Description:   *description,
		Location:      *location,
		Date:          *date,
		ImageContent:  content,
		ImageFilename: *imagePath,
		Owner:         *username,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Posted item #%d\n", item.ID)
	return nil
}

func cmdList(cfg config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	dataDir := fs.String("data", cfg.DataDir, "path to the shared data directory")
	owner := fs.String("owner", "", "only show reports posted by this user")
	fs.Parse(args)

	svc := lostfound.New(*dataDir, log)

	if *owner != "" {
		items, err := svc.ItemsByOwner(*owner)
		if err != nil {
			return err
		}
		printItems(items)
		return nil
	}

	items, err := svc.ListItems()
	if err != nil {
		return err
	}
	printItems(svc.FilterItems(items, "", model.TypeAll))
	return nil
}

func cmdSearch(cfg config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	dataDir := fs.String("data", cfg.DataDir, "path to the shared data directory")
	term := fs.String("term", "", "search term matched against title and description")
	itemType := fs.String("type", string(model.TypeAll), "All, Lost or Found")
	fs.Parse(args)

	svc := lostfound.New(*dataDir, log)
	items, err := svc.ListItems()
	if err != nil {
		return err
	}
	printItems(svc.FilterItems(items, *term, model.ItemType(*itemType)))
	return nil
}

func cmdContact(cfg config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("contact", flag.ExitOnError)
	dataDir := fs.String("data", cfg.DataDir, "path to the shared data directory")
	username := fs.String("user", "", "username")
	password := fs.String("password", "", "password")
	of := fs.String("of", "", "poster whose contact details to look up")
	fs.Parse(args)

	if *of == "" {
		return errors.New("-of is required")
	}

	// Contact details are only shown to logged-in users.
	svc := lostfound.New(*dataDir, log)
	if err := login(svc, *username, *password); err != nil {
		return err
	}

	contact, err := svc.GetContact(*of)
	if err != nil {
		return err
	}
	fmt.Printf("Contact info for %s: %s\n", *of, contact)
	return nil
}

func cmdResolve(cfg config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	dataDir := fs.String("data", cfg.DataDir, "path to the shared data directory")
	username := fs.String("user", "", "username")
	password := fs.String("password", "", "password")
	id := fs.Int("id", 0, "id of the report to resolve")
	fs.Parse(args)

	svc := lostfound.New(*dataDir, log)
	if err := login(svc, *username, *password); err != nil {
		return err
	}
	if err := svc.MarkResolved(*id, *username); err != nil {
		return err
	}
	fmt.Printf("Item #%d marked as resolved\n", *id)
	return nil
}

func cmdDelete(cfg config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	dataDir := fs.String("data", cfg.DataDir, "path to the shared data directory")
	username := fs.String("user", "", "username")
	password := fs.String("password", "", "password")
	id := fs.Int("id", 0, "id of the report to delete")
	fs.Parse(args)

	svc := lostfound.New(*dataDir, log)
	if err := login(svc, *username, *password); err != nil {
		return err
	}
	if err := svc.DeleteItem(*id, *username); err != nil {
		return err
	}
	fmt.Printf("Item #%d deleted\n", *id)
	return nil
}

// login runs the single-shot credential check for commands acting as a user.
func login(svc *lostfound.Service, username, password string) error {
	if username == "" || password == "" {
		return errors.New("-user and -password are required")
	}
	ok, err := svc.Authenticate(username, password)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("invalid username or password")
	}
	return nil
}

func printItems(items []model.Item) {
	if len(items) == 0 {
		fmt.Println("No items found.")
		return
	}
	for _, item := range items {
		status := ""
		if item.Status == model.StatusResolved {
			status = " (resolved)"
		}
		fmt.Printf("#%d [%s] %s%s\n", item.ID, item.Type, item.Title, status)
		fmt.Printf("    %s\n", item.Description)
		fmt.Printf("    Posted by %s on %s | Location: %s\n", item.Owner, item.Date, item.Location)
		if item.ImagePath != nil {
			fmt.Printf("    Image: %s\n", *item.ImagePath)
		}
	}
}
