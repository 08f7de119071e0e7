package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/civic-topics-backend/internal/adapter/redisqueue"
	"github.com/heartmarshall/civic-topics-backend/internal/domain"
)

var enqueueCmd = &cobra.Command{
	Use:   "enqueue <task-type>",
	Short: "Queue a background task for the worker",
	Long: `Queue a background task for the worker.

Task types and their flags:
  update_continuity    --topic or --meeting
  extract_topics       --meeting
  motion_recorded      --motion
  backfill_continuity  [--topic]
  auto_triage`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := buildTask(cmd, domain.TaskType(args[0]))
		if err != nil {
			return err
		}
		delay, _ := cmd.Flags().GetDuration("delay")

		ctx := cmd.Context()
		q, err := redisqueue.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer q.Close()

		if err := q.EnqueueIn(ctx, task, delay); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Queued %s task %s\n", task.Type, task.ID)
		return nil
	},
}

func buildTask(cmd *cobra.Command, typ domain.TaskType) (domain.Task, error) {
	flags := cmd.Flags()
	meeting, _ := flags.GetInt64("meeting")
	motion, _ := flags.GetInt64("motion")

	var topicID *uuid.UUID
	if flags.Changed("topic") {
		raw, _ := flags.GetString("topic")
		id, err := parseTopicID(raw)
		if err != nil {
			return domain.Task{}, err
		}
		topicID = &id
	}

	var args any
	switch typ {
	case domain.TaskUpdateContinuity:
		a := domain.ContinuityArgs{TopicID: topicID}
		if meeting != 0 {
			a.MeetingID = &meeting
		}
		if (a.TopicID == nil) == (a.MeetingID == nil) {
			return domain.Task{}, errors.New("update_continuity needs exactly one of --topic or --meeting")
		}
		args = a
	case domain.TaskExtractTopics:
		if meeting == 0 {
			return domain.Task{}, errors.New("extract_topics needs --meeting")
		}
		args = domain.ExtractArgs{MeetingID: meeting}
	case domain.TaskMotionRecorded:
		if motion == 0 {
			return domain.Task{}, errors.New("motion_recorded needs --motion")
		}
		args = domain.MotionArgs{MotionID: motion}
	case domain.TaskBackfillContinuity:
		args = domain.BackfillArgs{TopicID: topicID}
	case domain.TaskAutoTriage:
		args = domain.AutoTriageArgs{}
	default:
		return domain.Task{}, fmt.Errorf("unsupported task type %q", typ)
	}
	return domain.NewTask(typ, args)
}

func init() {
	f := enqueueCmd.Flags()
	f.String("topic", "", "Topic id")
	f.Int64("meeting", 0, "Meeting id")
	f.Int64("motion", 0, "Motion id")
	f.Duration("delay", 0, "Delay before the task becomes available")

	rootCmd.AddCommand(enqueueCmd)
}

