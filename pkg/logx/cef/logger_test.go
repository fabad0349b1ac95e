package cef_test

import (
	"context"
	"time"

	"github.com/docshelf/warden/cmd/contextx"
	"github.com/docshelf/warden/pkg/logx"
	. "github.com/docshelf/warden/pkg/logx/cef"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gbytes"
)

type recordedError struct {
	msg string
	err error
}

type recordingErrLogger struct {
	errors []recordedError
}

func (l *recordingErrLogger) WithName(string) logx.Logger { return l }

func (l *recordingErrLogger) WithData(...logx.Data) logx.Logger { return l }

func (l *recordingErrLogger) Debug(string, ...logx.Data) {}

func (l *recordingErrLogger) Info(string, ...logx.Data) {}
func (l *recordingErrLogger) Error(msg string, err error, data ...logx.Data) {
	l.errors = append(l.errors, recordedError{msg: msg, err: err})
}

var _ = Describe("Logger", func() {
	var (
		logOutput *Buffer
		errLogger *recordingErrLogger

		logger *Logger

		ctx context.Context
	)

	BeforeEach(func() {
		logOutput = NewBuffer()
		errLogger = &recordingErrLogger{}

		logger = NewLogger(logOutput, "docshelf", "unittest", "0.0.1", "warden-host", 443, errLogger)

		rt := time.Date(1999, 12, 31, 23, 59, 59, 59, time.UTC)
		ctx = contextx.WithReceiptTime(
			contextx.WithRemoteAddr(context.Background(), "1.1.1.1:12345"),
			rt,
		)
	})

	Describe("#Log", func() {
		Context("when all fields are available", func() {
			It("logs source and destination hostnames and ports", func() {
				logger.Log(ctx, "test-signature", "test-name")

				Eventually(logOutput).Should(Say("test-signature"))
				Eventually(logOutput).Should(Say("test-name"))
				Eventually(logOutput).Should(Say("dst=warden-host"))
				Eventually(logOutput).Should(Say("src=1.1.1.1"))
				Eventually(logOutput).Should(Say("dpt=443"))
				Eventually(logOutput).Should(Say("spt=12345"))
				Eventually(logOutput).Should(Say("rt=\"Dec 31 1999 23:59:59\""))
			})
		})

		Context("when the receipt time is not available", func() {
			It("does not log rt", func() {
				noReceiptContext := contextx.WithRemoteAddr(context.Background(), "1.1.1.1:12345")
				logger.Log(noReceiptContext, "test-signature", "test-name")

				Consistently(logOutput).ShouldNot(Say("rt="))
			})
		})

		Context("when there are custom extensions", func() {
			It("logs each extension", func() {
				logger.Log(ctx, "test-signature", "test-name",
					logx.SecurityData{Key: "groupName", Value: "some-group"},
					logx.SecurityData{Key: "principalID", Value: "some-principal"},
				)

				Eventually(logOutput).Should(Say("cs1Label=groupName"))
				Eventually(logOutput).Should(Say("cs1=some-group"))
				Eventually(logOutput).Should(Say("cs2Label=principalID"))
				Eventually(logOutput).Should(Say("cs2=some-principal"))

				Expect(errLogger.errors).To(BeEmpty())
			})

			Context("when an extension has no key", func() {
				It("reports the invalid extension and still logs the valid ones", func() {
					logger.Log(ctx, "test-signature", "test-name",
						logx.SecurityData{Value: "no-key"},
						logx.SecurityData{Key: "key", Value: "value"},
					)

					Consistently(logOutput).ShouldNot(Say("no-key"))
					Eventually(logOutput).Should(Say("cs1Label=key"))
					Eventually(logOutput).Should(Say("cs1=value"))

					Expect(errLogger.errors).To(HaveLen(1))
					Expect(errLogger.errors[0].msg).To(Equal("invalid-cef-custom-extension"))
					Expect(errLogger.errors[0].err).To(MatchError("the extension key and/or value is empty"))
				})
			})

			Context("when there are more than 6 custom extensions", func() {
				It("only logs the first 6", func() {
					args := []logx.SecurityData{
						{Key: "one", Value: "1"},
						{Key: "two", Value: "2"},
						{Key: "three", Value: "3"},
						{Key: "four", Value: "4"},
						{Key: "five", Value: "5"},
						{Key: "six", Value: "6"},
						{Key: "seven", Value: "7"},
					}
					logger.Log(ctx, "test-signature", "test-name", args...)

					Eventually(logOutput).Should(Say("cs6Label=six"))
					Consistently(logOutput).ShouldNot(Say("cs7Label=seven"))

					Expect(errLogger.errors).To(HaveLen(1))
					Expect(errLogger.errors[0].err).To(MatchError("cannot provide more than 6 custom extensions"))
				})
			})
		})
	})
})
