package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mroshb/filmorate/internal/importer"
	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/internal/repositories"
	"github.com/mroshb/filmorate/internal/services"
	"github.com/mroshb/filmorate/pkg/errors"
)

const dateLayout = "2006-01-02"

type app struct {
	users *services.UserService
	films *services.FilmService
	refs  *services.ReferenceService
	out   io.Writer
}

func newApp(store repositories.Store, popularDefault int, out io.Writer) *app {
	return &app{
		users: services.NewUserService(store, store),
		films: services.NewFilmService(store, store, popularDefault),
		refs:  services.NewReferenceService(store),
		out:   out,
	}
}

func (a *app) run(args []string) error {
	if len(args) == 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "no command given")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "import":
		return a.importFilms(rest)
	case "popular":
		fs := flag.NewFlagSet("popular", flag.ContinueOnError)
		count := optionalInt(fs, "count", "number of films to show")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return a.popular(count())
	case "films":
		return a.print(a.films.ListFilms())
	case "users":
		return a.print(a.users.ListUsers())
	case "genres":
		return a.print(a.refs.ListGenres())
	case "ratings":
		return a.print(a.refs.ListRatings())
	case "user":
		return a.createUser(rest)
	case "like", "unlike":
		ids, err := parseIDs(rest, 2)
		if err != nil {
			return err
		}
		if cmd == "like" {
			return a.done(a.films.AddLike(ids[0], ids[1]))
		}
		return a.done(a.films.RemoveLike(ids[0], ids[1]))
	case "friend", "unfriend":
		ids, err := parseIDs(rest, 2)
		if err != nil {
			return err
		}
		if cmd == "friend" {
			return a.done(a.users.AddFriend(ids[0], ids[1]))
		}
		return a.done(a.users.RemoveFriend(ids[0], ids[1]))
	case "friends":
		ids, err := parseIDs(rest, 1)
		if err != nil {
			return err
		}
		return a.print(a.users.Friends(ids[0]))
	case "common":
		ids, err := parseIDs(rest, 2)
		if err != nil {
			return err
		}
		return a.print(a.users.CommonFriends(ids[0], ids[1]))
	default:
		return errors.Newf(errors.ErrCodeInvalidArgument, "unknown command %q", cmd)
	}
}

// createUser takes <email> <login> <birthday YYYY-MM-DD> [name].
func (a *app) createUser(args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return errors.New(errors.ErrCodeInvalidArgument, "user needs <email> <login> <birthday> [name]")
	}
	birthday, err := time.Parse(dateLayout, args[2])
	if err != nil {
		return errors.Newf(errors.ErrCodeInvalidArgument, "invalid birthday %q, want YYYY-MM-DD", args[2])
	}

	draft := &models.User{Email: args[0], Login: args[1], Birthday: birthday}
	if len(args) == 4 {
		draft.Name = args[3]
	}
	return a.print(a.users.CreateUser(draft))
}

func (a *app) importFilms(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	popular := optionalInt(fs, "popular", "print the N most liked films after importing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New(errors.ErrCodeInvalidArgument, "import needs exactly one workbook path")
	}

	result, err := importer.New(a.films, a.refs).ImportFile(fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "imported %d films, skipped %d rows\n", len(result.Imported), len(result.Skipped))
	for _, skipped := range result.Skipped {
		fmt.Fprintf(a.out, "  %v\n", skipped)
	}

	if count := popular(); count != nil {
		return a.popular(count)
	}
	return nil
}

func (a *app) popular(count *int) error {
	return a.print(a.films.PopularFilms(count))
}

func (a *app) done(err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}

func (a *app) print(v interface{}, err error) error {
	if err != nil {
		return err
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// optionalInt registers an int flag whose getter returns nil when the flag was not given.
func optionalInt(fs *flag.FlagSet, name, usage string) func() *int {
	value := fs.Int(name, 0, usage)
	return func() *int {
		set := false
		fs.Visit(func(f *flag.Flag) {
			if f.Name == name {
				set = true
			}
		})
		if !set {
			return nil
		}
		return value
	}
}

func parseIDs(args []string, n int) ([]uint, error) {
	if len(args) != n {
		return nil, errors.Newf(errors.ErrCodeInvalidArgument, "expected %d id argument(s), got %d", n, len(args))
	}

	ids := make([]uint, n)
	for i, arg := range args {
		id, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return nil, errors.Newf(errors.ErrCodeInvalidArgument, "invalid id %q", arg)
		}
		ids[i] = uint(id)
	}
	return ids, nil
}
