package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookit/internal/client/models"
	"github.com/dmitrijs2005/bookit/internal/client/router"
)

// Whoami prints the signed-in profile.
func (a *App) Whoami(ctx context.Context) error {
	s := a.session.Snapshot()
	if !s.IsAuthenticated {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	u := s.User
	fmt.Fprintf(a.out, "%s <%s>\n", u.Name, u.Email)
	fmt.Fprintf(a.out, "  role:     %s\n", u.UserType)
	if u.Phone != "" {
		fmt.Fprintf(a.out, "  phone:    %s\n", u.Phone)
	}
	if u.ProfilePicture != "" {
		fmt.Fprintf(a.out, "  picture:  %s\n", u.ProfilePicture)
	}
	fmt.Fprintf(a.out, "  unread:   %d\n", u.UnreadNotifications())
	fmt.Fprintf(a.out, "  home:     %s\n", router.DashboardFor(u.UserType))
	return nil
}

// UpdateProfile prompts for new profile values; empty answers keep the
// current value.
func (a *App) UpdateProfile(ctx context.Context) error {
	var patch models.ProfilePatch
	fields := []struct {
		prompt string
		dst    **string
	}{
		{"New name (empty to keep)", &patch.Name},
		{"New email (empty to keep)", &patch.Email},
		{"New phone (empty to keep)", &patch.Phone},
		{"New profile picture URL (empty to keep)", &patch.ProfilePicture},
	}

	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = &v
		}
	}

	if patch.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	user, err := a.session.UpdateProfile(ctx, patch)
	if err != nil {
		a.report("Profile update failed", err)
		return err
	}

	fmt.Fprintf(a.out, "Profile updated: %s <%s>\n", user.Name, user.Email)
	return nil
}

// Notifications lists the notifications carried by the profile.
func (a *App) Notifications(ctx context.Context) error {
	s := a.session.Snapshot()
	if !s.IsAuthenticated {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	if len(s.User.Notifications) == 0 {
		fmt.Fprintln(a.out, "No notifications")
		return nil
	}

	for _, n := range s.User.Notifications {
		mark := " "
		if !n.Read {
			mark = "*"
		}
		fmt.Fprintf(a.out, "%s %s  %s\n", mark, n.CreatedAt.Format("2006-01-02 15:04"), n.Message)
	}
	return nil
}

// Open asks the router whether the current visitor may view path.
func (a *App) Open(ctx context.Context, path string) error {
	d := a.router.Guard(path)
	switch d.Action {
	case router.Allow:
		fmt.Fprintf(a.out, "Opened %s\n", d.Target)
	case router.Wait:
		fmt.Fprintln(a.out, "Session is still loading, try again")
	case router.Redirect:
		fmt.Fprintf(a.out, "Redirected to %s\n", d.Target)
	}
	return nil
}

// Refresh re-verifies the session with the server.
func (a *App) Refresh(ctx context.Context) error {
	s := a.session.Refresh(ctx)
	fmt.Fprintf(a.out, "Session %s\n", s.State)
	return nil
}
