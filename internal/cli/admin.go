package cli

import (
	"strings"
)

func (s *Shell) adminMenu(session *Session) (*Session, error) {
	s.println("--- Admin Menu ---")
	s.println("1. View Patient Progress")
	s.println("2. Delete User Account")
	s.println("3. List All Users")
	s.println("4. View All Avatars")
	s.println("5. View All Progress Records")
	s.println("0. Logout")

	choice, err := s.prompt("Enter choice: ")
	if err != nil {
		return session, err
	}

	switch choice {
	case "1":
		err = s.viewPatient()
	case "2":
		err = s.deleteUser(session)
	case "3":
		s.listUsers()
	case "4":
		s.listAvatars()
	case "5":
		s.listProgress()
	case "0":
		s.logout(session)
		return nil, nil
	default:
		s.println("Invalid choice.")
	}
	return session, err
}

func (s *Shell) viewPatient() error {
	username, err := s.prompt("Patient username: ")
	if err != nil {
		return err
	}
	user, err := s.auth.GetUserByUsername(username)
	if err != nil {
		s.reportError(err)
		return nil
	}

	s.printf("Patient: %s (id %d)\n", user.Username, user.ID)
	s.viewHistory(user.ID)
	s.viewTrends(user.ID)
	return nil
}

func (s *Shell) deleteUser(session *Session) error {
	s.println("--- Delete User Account ---")
	username, err := s.prompt("Username to delete: ")
	if err != nil {
		return err
	}
	confirm, err := s.prompt("This also removes the avatar and all progress. Continue? (y/N): ")
	if err != nil {
		return err
	}
	if !strings.EqualFold(confirm, "y") && !strings.EqualFold(confirm, "yes") {
		s.println("Deletion cancelled.")
		return nil
	}

	deleted, err := s.auth.DeleteAccountAs(session.User, username)
	if err != nil {
		s.reportError(err)
		return nil
	}
	if !deleted {
		s.println("No user with that username.")
		return nil
	}
	s.printf("User %s deleted.\n", username)
	return nil
}

func (s *Shell) listUsers() {
	s.println("--- All Users ---")
	users, err := s.auth.ListUsers()
	if err != nil {
		s.reportError(err)
		return
	}
	if len(users) == 0 {
		s.println("No users found.")
		return
	}
	s.printf("%-5s| %-32s| %s\n", "ID", "Username", "Role")
	for _, u := range users {
		s.printf("%-5d| %-32s| %s\n", u.ID, u.Username, u.Role)
	}
}

func (s *Shell) listAvatars() {
	s.println("--- All Avatars ---")
	avatars, err := s.avatars.ListAvatars()
	if err != nil {
		s.reportError(err)
		return
	}
	if len(avatars) == 0 {
		s.println("No avatars found.")
		return
	}
	s.printf("%-8s| %-30s| %-6s| %-6s| %-7s| %s\n", "User ID", "Name", "Level", "XP", "Color", "Accessory")
	for _, a := range avatars {
		s.printf("%-8d| %-30s| %-6d| %-6d| %-7s| %s\n", a.UserID, a.Name, a.Level, a.TotalExperience, a.Color, a.Accessory)
	}
}

func (s *Shell) listProgress() {
	s.println("--- All Progress Records ---")
	records, err := s.progress.GetAllProgress()
	if err != nil {
		s.reportError(err)
		return
	}
	if len(records) == 0 {
		s.println("No progress records found.")
		return
	}
	s.printf("%-8s| %-19s| %s\n", "User ID", "Date & Time", "Score")
	for _, rec := range records {
		s.printf("%-8d| %-19s| %d\n", rec.UserID, rec.TakenAt.Local().Format(timeLayout), rec.Score)
	}
}
