package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"notedesk/internal/client/api"
	clientauth "notedesk/internal/client/auth"
	"notedesk/internal/client/controller"
	"notedesk/internal/client/guard"
	"notedesk/internal/client/session"
)

// Default server base URL; can override with NOTEDESK_SERVER env var or --server flag.
var serverBaseURL = api.DefaultBaseURL

func main() {
	cmd := flag.String("cmd", "categories", "Command: signup|login|logout|whoami|categories|new-category|category|new-note|note|edit-note|purge")
	email := flag.String("email", "", "Email (signup/login)")
	password := flag.String("password", "", "Password (signup/login)")
	name := flag.String("name", "", "Category name (new-category, category rename hint)")
	categoryID := flag.String("category", "", "Category ID (category/new-note)")
	noteID := flag.String("note", "", "Note ID (note/edit-note)")
	title := flag.String("title", "", "Note title (new-note/edit-note)")
	desc := flag.String("desc", "", "Note description (new-note/edit-note)")
	hintName := flag.String("hint-name", "", "Optional category name hint carried from the previous screen")
	serverFlag := flag.String("server", "", "Override server base URL (e.g. https://api.example.com)")
	flag.Parse()

	if env := os.Getenv("NOTEDESK_SERVER"); env != "" {
		serverBaseURL = strings.TrimRight(env, "/")
	}
	if *serverFlag != "" {
		serverBaseURL = strings.TrimRight(*serverFlag, "/")
	}

	path, err := session.DefaultPath()
	if err != nil {
		log.Fatalf("session path: %v", err)
	}
	store := session.NewFileStore(path)
	manager := clientauth.NewManager(store)
	if err := manager.Restore(); err != nil {
		log.Printf("Warning: session restore failed, starting logged out: %v", err)
	}
	client := api.New(serverBaseURL, manager)

	app := &app{manager: manager, client: client}

	ctx := context.Background()
	if err := app.run(ctx, *cmd, flags{
		email:      *email,
		password:   *password,
		name:       *name,
		categoryID: *categoryID,
		noteID:     *noteID,
		title:      *title,
		desc:       *desc,
		hintName:   *hintName,
	}); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

type flags struct {
	email, password       string
	name                  string
	categoryID, noteID    string
	title, desc, hintName string
}

type app struct {
	manager *clientauth.Manager
	client  *api.Client
}

// navigate resolves a virtual route through the guards before any screen
// logic runs. A redirect is printed and honored by aborting the command.
func (a *app) navigate(path string) error {
	state := guard.AuthState{
		Loading:  a.manager.Loading(),
		LoggedIn: a.manager.IsLoggedIn(),
		Role:     a.manager.Role(),
	}
	switch d := guard.Resolve(path, state); d.Kind {
	case guard.Wait:
		return fmt.Errorf("session still restoring, try again")
	case guard.Redirect:
		return fmt.Errorf("redirected to %s", d.Path)
	default:
		return nil
	}
}

func (a *app) run(ctx context.Context, cmd string, f flags) error {
	switch cmd {
	case "signup":
		return a.signup(ctx, f.email, f.password)
	case "login":
		return a.login(ctx, f.email, f.password)
	case "logout":
		return a.manager.Logout()
	case "whoami":
		return a.whoami()
	case "categories":
		return a.categories(ctx)
	case "new-category":
		return a.newCategory(ctx, f.name)
	case "category":
		return a.categoryDetail(ctx, f.categoryID, f.hintName)
	case "new-note":
		return a.newNote(ctx, f.categoryID, f.title, f.desc)
	case "note":
		return a.noteDetail(ctx, f.noteID, f.hintName, f.title, f.desc)
	case "edit-note":
		return a.editNote(ctx, f.noteID, f.title, f.desc)
	case "purge":
		return a.purge(ctx)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) signup(ctx context.Context, email, password string) error {
	if err := a.navigate("/signup"); err != nil {
		return err
	}
	if email == "" || password == "" {
		return fmt.Errorf("--email and --password required")
	}
	if err := a.client.Register(ctx, email, password); err != nil {
		return err
	}
	fmt.Println("Account created, you can now login.")
	return nil
}

func (a *app) login(ctx context.Context, email, password string) error {
	if err := a.navigate("/login"); err != nil {
		return err
	}
	if email == "" || password == "" {
		return fmt.Errorf("--email and --password required")
	}
	res, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.manager.SetAuth(res.AccessToken, res.Role); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (role %s)\n", email, res.Role)
	return nil
}

func (a *app) whoami() error {
	if !a.manager.IsLoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("Logged in, role %s\n", a.manager.Role())
	return nil
}

func (a *app) categories(ctx context.Context) error {
	if err := a.navigate("/category"); err != nil {
		return err
	}
	list := controller.NewCategoryList(a.client, a.manager)
	list.Load(ctx)
	if msg := list.Err(); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	categories := list.Categories()
	if len(categories) == 0 {
		fmt.Println("No categories yet. Create one to get started!")
		return nil
	}
	for _, c := range categories {
		fmt.Printf("%s  %s\n", c.ID, c.Name)
	}
	return nil
}

func (a *app) newCategory(ctx context.Context, name string) error {
	if err := a.navigate("/category"); err != nil {
		return err
	}
	list := controller.NewCategoryList(a.client, a.manager)
	if err := list.CreateCategory(ctx, name); err != nil {
		return err
	}
	fmt.Printf("Created category %q\n", strings.TrimSpace(name))
	return nil
}

func (a *app) categoryDetail(ctx context.Context, categoryID, hintName string) error {
	if categoryID == "" {
		return fmt.Errorf("--category required")
	}
	if err := a.navigate("/category/" + categoryID); err != nil {
		return err
	}

	detail := controller.NewCategoryDetail(a.client, a.manager, categoryID)
	var hint *controller.NavigationHint
	if hintName != "" {
		hint = &controller.NavigationHint{CategoryName: hintName}
		// hint renders before the fetch resolves
		fmt.Printf("# %s\n", hintName)
	}
	detail.Load(ctx, hint)
	if msg := detail.Err(); msg != "" {
		return fmt.Errorf("%s", msg)
	}

	fmt.Printf("# %s\n", detail.Name())
	notes := detail.Notes()
	if len(notes) == 0 {
		fmt.Println("No notes in this category yet.")
		return nil
	}
	for _, n := range notes {
		fmt.Printf("%s  %s\n", n.ID, n.NoteTitle)
	}
	return nil
}

func (a *app) newNote(ctx context.Context, categoryID, title, desc string) error {
	if categoryID == "" {
		return fmt.Errorf("--category required")
	}
	if err := a.navigate("/category/" + categoryID); err != nil {
		return err
	}
	detail := controller.NewCategoryDetail(a.client, a.manager, categoryID)
	if err := detail.AddNote(ctx, title, desc); err != nil {
		return err
	}
	fmt.Printf("Created note %q\n", strings.TrimSpace(title))
	return nil
}

func (a *app) noteDetail(ctx context.Context, noteID, hintCategory, hintTitle, hintDesc string) error {
	if noteID == "" {
		return fmt.Errorf("--note required")
	}
	if err := a.navigate("/note/" + noteID); err != nil {
		return err
	}

	detail := controller.NewNoteDetail(a.client, a.manager, noteID)
	var hint *controller.NavigationHint
	if hintTitle != "" || hintDesc != "" || hintCategory != "" {
		hint = &controller.NavigationHint{
			Title:        hintTitle,
			Description:  hintDesc,
			CategoryName: hintCategory,
		}
	}
	if err := detail.Load(ctx, hint); err != nil {
		return err
	}

	fmt.Printf("# %s\n\n", detail.Title())
	if html, err := detail.HTMLPreview(); err == nil {
		fmt.Println(html)
	} else {
		fmt.Println(detail.Desc())
	}
	return nil
}

func (a *app) editNote(ctx context.Context, noteID, title, desc string) error {
	if noteID == "" {
		return fmt.Errorf("--note required")
	}
	if err := a.navigate("/note/" + noteID); err != nil {
		return err
	}

	detail := controller.NewNoteDetail(a.client, a.manager, noteID)
	if err := detail.Save(ctx, title, desc); err != nil {
		return err
	}
	// Save re-fetched the note; show what the backend persisted.
	fmt.Printf("Saved. Server copy:\n# %s\n\n%s\n", detail.Title(), detail.Desc())
	return nil
}

func (a *app) purge(ctx context.Context) error {
	if err := a.navigate("/admin"); err != nil {
		return err
	}
	if err := a.client.PurgeNotes(ctx, a.manager.Token()); err != nil {
		return err
	}
	fmt.Println("All notes deleted.")
	return nil
}
