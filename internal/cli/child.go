package cli

import (
	"strings"

	"pokemedquest/internal/models"
	"pokemedquest/internal/service"
)

func (s *Shell) childMenu(session *Session) (*Session, error) {
	s.println("--- Child Menu ---")
	s.println("1. View My Avatar")
	s.println("2. Customize Avatar")
	s.println("3. Record CMAS Score")
	s.println("4. View My Progress History")
	s.println("5. Check My Progress Trends")
	s.println("0. Logout")

	choice, err := s.prompt("Enter choice: ")
	if err != nil {
		return session, err
	}

	switch choice {
	case "1":
		s.viewAvatar(session)
	case "2":
		err = s.customizeAvatar(session)
	case "3":
		err = s.recordScore(session)
	case "4":
		s.viewHistory(session.User.ID)
	case "5":
		s.viewTrends(session.User.ID)
	case "0":
		s.logout(session)
		return nil, nil
	default:
		s.println("Invalid choice.")
	}
	return session, err
}

func (s *Shell) viewAvatar(session *Session) {
	avatar, err := s.avatars.GetAvatar(session.User.ID)
	if err != nil {
		s.reportError(err)
		return
	}
	if avatar == nil {
		s.println("You don't seem to have an avatar yet.")
		return
	}

	s.println("--- Your Avatar ---")
	s.printAvatar(avatar)
	picture, err := s.renderer.Render(avatar)
	if err != nil {
		s.reportError(err)
		return
	}
	s.println(picture)
}

func (s *Shell) printAvatar(avatar *models.Avatar) {
	toNext := service.PointsPerLevel - avatar.TotalExperience%service.PointsPerLevel
	s.printf("Name: %s\n", avatar.Name)
	s.printf("Level: %d\n", avatar.Level)
	s.printf("Experience: %d (%d to next level)\n", avatar.TotalExperience, toNext)
	s.printf("Color: %s\n", avatar.Color)
	s.printf("Accessory: %s\n", avatar.Accessory)
}

func (s *Shell) customizeAvatar(session *Session) error {
	s.println("--- Customize Avatar ---")
	avatar, err := s.avatars.GetAvatar(session.User.ID)
	if err != nil {
		s.reportError(err)
		return nil
	}
	if avatar == nil {
		s.println("You need an avatar first!")
		return nil
	}

	name, err := s.prompt("New name [" + avatar.Name + "]: ")
	if err != nil {
		return err
	}
	if name == "" {
		name = avatar.Name
	}
	color, err := s.prompt("New color (" + strings.Join(models.Colors, ", ") + ") [" + avatar.Color + "]: ")
	if err != nil {
		return err
	}
	if color == "" {
		color = avatar.Color
	}
	accessory, err := s.prompt("New accessory (blank for none): ")
	if err != nil {
		return err
	}

	if _, err := s.avatars.Customize(session.User.ID, name, color, accessory); err != nil {
		s.reportError(err)
		return nil
	}
	s.println("Avatar updated successfully!")
	return nil
}

func (s *Shell) recordScore(session *Session) error {
	s.println("--- Record CMAS Score ---")
	score, err := s.promptInt("Enter CMAS score: ")
	if err != nil {
		return err
	}

	result, err := s.progress.RecordTestResult(session.User.ID, score)
	if err != nil {
		s.reportError(err)
		return nil
	}

	s.printf("Progress recorded: score %d on %s\n",
		result.Progress.Score, result.Progress.TakenAt.Local().Format(timeLayout))
	switch {
	case result.NewLevel == service.NoAvatarLevel:
		s.println("Score saved, but there is no avatar to level up.")
	case result.LeveledUp:
		s.printf("LEVEL UP! Your avatar reached level %d! (+%d XP)\n", result.NewLevel, result.GainedExperience)
	default:
		s.printf("+%d XP. Your avatar is level %d.\n", result.GainedExperience, result.NewLevel)
	}
	return nil
}

func (s *Shell) viewHistory(userID int64) {
	s.println("--- Progress History ---")
	records, err := s.progress.GetProgressHistory(userID)
	if err != nil {
		s.reportError(err)
		return
	}
	if len(records) == 0 {
		s.println("No progress history found.")
		return
	}

	s.println("Date & Time        | Score")
	s.println("-------------------|-------")
	for _, rec := range records {
		s.printf("%-19s| %d\n", rec.TakenAt.Local().Format(timeLayout), rec.Score)
	}
}

func (s *Shell) viewTrends(userID int64) {
	s.println("--- Progress Trends ---")
	lines, err := s.progress.AnalyzeTrends(userID)
	if err != nil {
		s.reportError(err)
		return
	}
	for _, line := range lines {
		s.println(line)
	}
}

const timeLayout = "2006-01-02 15:04"
