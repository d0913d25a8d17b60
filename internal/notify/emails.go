package notify

import (
	"fmt"

	"github.com/simskyeconomy/simsky-core/internal/geo"
)

// Email bodies are assembled here so services only hand over the facts.

func WelcomeEmail(username, firstName, email string) Message {
	body := fmt.Sprintf(`
	<html>
		<body style="font-family: Arial, sans-serif; line-height: 1.6;">
			<h2>Welcome to SimSky Economy, %s!</h2>
			<p>Hello %s,</p>
			<p>Your account has been successfully created, and you're now part of our growing community.</p>
			<p>Get started by logging in with your username: <strong>%s</strong> or your email: <strong>%s</strong>.</p>
			<p>Please verify your email address to fully activate your account (see the verification email we just sent).</p>
			<p>Best regards,<br>The SimSky Economy Team</p>
		</body>
	</html>
	`, firstName, username, username, email)

	return Message{
		RecipientEmail: email,
		Subject:        "Your Journey Begins: Welcome to SimSky Economy!",
		Body:           body,
	}
}

func VerificationEmail(username, email, verificationLink string) Message {
	body := fmt.Sprintf(`
	<html>
		<body style="font-family: Arial, sans-serif; line-height: 1.6;">
			<h2>Verify Your Email Address</h2>
			<p>Hello %s,</p>
			<p>To complete your registration, please verify your email address by clicking the link below:</p>
			<p><a href="%s">%s</a></p>
			<p>This link will expire in 30 minutes.</p>
			<p>If you did not create an account, please ignore this email.</p>
			<p>Best regards,<br>The SimSky Economy Team</p>
		</body>
	</html>
	`, username, verificationLink, verificationLink)

	return Message{
		RecipientEmail: email,
		Subject:        "Please Verify Your SimSky Economy Email",
		Body:           body,
	}
}

func EmailVerifiedEmail(username, email string) Message {
	body := fmt.Sprintf(`
	<html>
		<body style="font-family: Arial, sans-serif; line-height: 1.6;">
			<h2>Email Verified Successfully!</h2>
			<p>Hello %s,</p>
			<p>Your email address has been successfully verified.</p>
			<p>You can now log in with your username: <strong>%s</strong> or your email: <strong>%s</strong>.</p>
			<p>Welcome aboard! Enjoy all the features of SimSky Economy.</p>
			<p>Best regards,<br>The SimSky Economy Team</p>
		</body>
	</html>
	`, username, username, email)

	return Message{
		RecipientEmail: email,
		Subject:        "Your SimSky Economy Email is Now Verified!",
		Body:           body,
	}
}

func LockoutEmail(username, email, sourceIP string, location geo.Location) Message {
	body := fmt.Sprintf(`
	<html>
		<body style="font-family: Arial, sans-serif; line-height: 1.6;">
			<h2>Account Locked Notification</h2>
			<p>Hello %s,</p>
			<p>We have detected multiple failed login attempts on your SimSky Economy account.</p>
			<p><strong>Username:</strong> %s</p>
			<p><strong>Email:</strong> %s</p>
			<p><strong>Last Attempt IP:</strong> %s</p>
			<p><strong>Last Attempt Location:</strong> %s</p>
			<p>For security reasons, your account has been locked. To regain access, please contact our support team at support@simskyeconomy.com.</p>
			<p>If you did not attempt to log in, please secure your account immediately by resetting your password.</p>
			<p>Best regards,<br>The SimSky Economy Team</p>
		</body>
	</html>
	`, username, username, email, sourceIP, location.Name)

	return Message{
		RecipientEmail: email,
		Subject:        "SimSky Economy: Your Account Has Been Locked",
		Body:           body,
	}
}

func PasswordResetEmail(username, email, resetLink string) Message {
	body := fmt.Sprintf(`
	<html>
		<body style="font-family: Arial, sans-serif; line-height: 1.6;">
			<h2>Password Reset Request</h2>
			<p>Dear %s,</p>
			<p>We received a request to reset your password for SimSky Economy.</p>
			<p>To reset your password, click the link below:</p>
			<p><a href="%s">%s</a></p>
			<p>This link will expire in 30 minutes.</p>
			<p>If you did not request this, please ignore this message.</p>
			<p>Best regards,<br>SimSky Economy Team</p>
		</body>
	</html>
	`, username, resetLink, resetLink)

	return Message{
		RecipientEmail: email,
		Subject:        fmt.Sprintf("Dear %s, SimSky Economy Account Password Reset", username),
		Body:           body,
	}
}

func PasswordResetConfirmedEmail(username, email string) Message {
	body := fmt.Sprintf(`
	<html>
		<body style="font-family: Arial, sans-serif; line-height: 1.6;">
			<h2>Password Reset Successful!</h2>
			<p>Hello %s,</p>
			<p>Your password for SimSky Economy has been successfully reset.</p>
			<p>You can now log in with your new password using your username: <strong>%s</strong> or your email: <strong>%s</strong>.</p>
			<p>If you did not request this change, please contact our support team immediately.</p>
			<p>Best regards,<br>The SimSky Economy Team</p>
		</body>
	</html>
	`, username, username, email)

	return Message{
		RecipientEmail: email,
		Subject:        "Your SimSky Economy Password Has Been Reset",
		Body:           body,
	}
}
