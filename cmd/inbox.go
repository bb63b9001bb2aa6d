package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "Read your messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		sess, err := a.RequireSession()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		msgs, err := a.Store.Inbox(ctx, sess.UserID)
		if err != nil {
			return fmt.Errorf("fetch messages: %w", err)
		}
		if len(msgs) == 0 {
			cmd.Println("No messages.")
			return nil
		}

		cmd.Println(titleStyle.Render("Inbox"))
		markRead, _ := cmd.Flags().GetBool("mark-read")
		for _, m := range msgs {
			from := m.SenderID
			if sender, err := a.Store.GetUser(ctx, m.SenderID); err == nil {
				from = sender.FullName
			}
			marker := " "
			if m.ReadAt == nil {
				marker = labelStyle.Render("•")
			}
			cmd.Printf("%s %s %s\n", marker, valueStyle.Render(from), mutedStyle.Render(m.CreatedDate.Format("Jan 2 15:04")))
			cmd.Printf("  %s\n", m.Body)

			if markRead && m.ReadAt == nil {
				if err := a.Store.MarkRead(ctx, m.ID, a.Now()); err != nil {
					return fmt.Errorf("mark read: %w", err)
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inboxCmd)
	inboxCmd.Flags().Bool("mark-read", true, "Mark listed messages as read")
}
