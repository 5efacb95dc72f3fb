package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robertKrusekopf/kegelsim-client/internal/domain/message"
)

func init() {
	messagesCmd.AddCommand(messagesListCmd)
	messagesCmd.AddCommand(messagesReadCmd)
	rootCmd.AddCommand(messagesCmd)
}

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Inbox operations",
}

var messagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List inbox messages",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		items, err := a.messages.List(cmd.Context())
		if err != nil {
			return err
		}

		w := newTable()
		fmt.Fprintln(w, "ID\tREAD\tSUBJECT")
		for _, m := range items {
			fmt.Fprintf(w, "%s\t%t\t%s\n", m.ID, m.IsRead, m.Subject)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("%d unread\n", message.UnreadCount(items))
		return nil
	},
}

var messagesReadCmd = &cobra.Command{
	Use:   "read [message-id]",
	Short: "Mark a message read (all messages when no id is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if len(args) == 0 {
			return a.messages.MarkAllRead(cmd.Context())
		}
		return a.messages.MarkRead(cmd.Context(), args[0])
	},
}
