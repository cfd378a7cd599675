package email

// HTML templates for transactional mail.

const welcomeTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #059669, #047857); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #ffffff; padding: 30px; border: 1px solid #e5e7eb; border-top: none; }
        .footer { background: #f9fafb; padding: 20px; text-align: center; font-size: 12px; color: #6b7280; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px; }
        .button { display: inline-block; background: #059669; color: white; padding: 12px 30px; text-decoration: none; border-radius: 6px; margin: 20px 0; }
        .features { margin: 20px 0; }
        .feature { padding: 10px 0; border-bottom: 1px solid #e5e7eb; }
        .feature:last-child { border-bottom: none; }
    </style>
</head>
<body>
    <div class="header">
        <h1>ScootMe</h1>
        <p style="margin: 5px 0 0 0; opacity: 0.9;">Campus Scooter Rentals</p>
    </div>
    <div class="content">
        <h2>Welcome, {{.UserName}}!</h2>
        <p>Thanks for joining ScootMe. Your account is ready to ride.</p>

        <div class="features">
            <h3>What you can do:</h3>
            <div class="feature">Scan a QR code to unlock a scooter</div>
            <div class="feature">Watch your fare and route live during the ride</div>
            <div class="feature">Pay with Fawry or card when you're done</div>
            <div class="feature">Review your ride history anytime</div>
        </div>

        <p style="text-align: center;">
            <a href="{{.BaseURL}}/scooters" class="button">Find a Scooter</a>
        </p>
    </div>
    <div class="footer">
        <p>&copy; 2026 ScootMe. All rights reserved.</p>
        <p>This is an automated message. Please do not reply to this email.</p>
    </div>
</body>
</html>
`

const passwordResetTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #059669, #047857); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #ffffff; padding: 30px; border: 1px solid #e5e7eb; border-top: none; }
        .footer { background: #f9fafb; padding: 20px; text-align: center; font-size: 12px; color: #6b7280; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px; }
        .password-box { background: #f3f4f6; border: 2px dashed #9ca3af; padding: 20px; border-radius: 8px; margin: 20px 0; text-align: center; font-family: monospace; font-size: 24px; letter-spacing: 2px; }
        .warning { background: #fef3c7; border: 1px solid #f59e0b; padding: 15px; border-radius: 8px; margin: 20px 0; color: #92400e; }
    </style>
</head>
<body>
    <div class="header">
        <h1>ScootMe</h1>
        <p style="margin: 5px 0 0 0; opacity: 0.9;">Campus Scooter Rentals</p>
    </div>
    <div class="content">
        <h2>Your Temporary Password</h2>
        <p>Hello {{.UserName}},</p>
        <p>We received a request to reset your password. Use this temporary password to sign in:</p>

        <div class="password-box">{{.TempPassword}}</div>

        <div class="warning">
            <strong>Security Notice:</strong> Change this password right after signing in. If you didn't request a reset, contact support.
        </div>
    </div>
    <div class="footer">
        <p>&copy; 2026 ScootMe. All rights reserved.</p>
        <p>This is an automated message. Please do not reply to this email.</p>
    </div>
</body>
</html>
`

const tripReceiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #059669, #047857); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #ffffff; padding: 30px; border: 1px solid #e5e7eb; border-top: none; }
        .footer { background: #f9fafb; padding: 20px; text-align: center; font-size: 12px; color: #6b7280; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px; }
        .info-box { background: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0; }
        .info-row { display: flex; justify-content: space-between; padding: 8px 0; border-bottom: 1px solid #e5e7eb; }
        .info-row:last-child { border-bottom: none; }
        .info-label { color: #6b7280; }
        .info-value { font-weight: 600; }
        .total-box { background: #059669; color: white; padding: 20px; border-radius: 8px; margin: 20px 0; text-align: center; }
        .total-amount { font-size: 32px; font-weight: bold; }
    </style>
</head>
<body>
    <div class="header">
        <h1>ScootMe</h1>
        <p style="margin: 5px 0 0 0; opacity: 0.9;">Campus Scooter Rentals</p>
    </div>
    <div class="content">
        <h2>Trip Completed</h2>
        <p>Hello {{.UserName}},</p>
        <p>Here's the receipt for your ride.</p>

        <div class="info-box">
            <div class="info-row">
                <span class="info-label">Trip ID</span>
                <span class="info-value">{{.TripID}}</span>
            </div>
            <div class="info-row">
                <span class="info-label">Started</span>
                <span class="info-value">{{.StartTime}}</span>
            </div>
            <div class="info-row">
                <span class="info-label">Ended</span>
                <span class="info-value">{{.EndTime}}</span>
            </div>
            <div class="info-row">
                <span class="info-label">Duration</span>
                <span class="info-value">{{.Duration}}</span>
            </div>
            <div class="info-row">
                <span class="info-label">Distance</span>
                <span class="info-value">{{.DistanceKm}} km</span>
            </div>
        </div>

        <div class="total-box">
            <p style="margin: 0 0 5px 0; opacity: 0.9;">Total Fare</p>
            <div class="total-amount">{{.Currency}} {{.Fare}}</div>
        </div>

        <p>Thanks for riding with ScootMe!</p>
    </div>
    <div class="footer">
        <p>&copy; 2026 ScootMe. All rights reserved.</p>
        <p>This is an automated message. Please do not reply to this email.</p>
    </div>
</body>
</html>
`

const paymentReceivedTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #059669, #047857); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #ffffff; padding: 30px; border: 1px solid #e5e7eb; border-top: none; }
        .footer { background: #f9fafb; padding: 20px; text-align: center; font-size: 12px; color: #6b7280; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px; }
        .success { background: #d1fae5; border: 1px solid #10b981; padding: 15px; border-radius: 8px; margin: 20px 0; text-align: center; }
        .amount { font-size: 32px; font-weight: bold; color: #065f46; }
        .info-box { background: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0; }
        .info-row { display: flex; justify-content: space-between; padding: 8px 0; border-bottom: 1px solid #e5e7eb; }
        .info-row:last-child { border-bottom: none; }
        .info-label { color: #6b7280; }
        .info-value { font-weight: 600; }
    </style>
</head>
<body>
    <div class="header">
        <h1>ScootMe</h1>
        <p style="margin: 5px 0 0 0; opacity: 0.9;">Campus Scooter Rentals</p>
    </div>
    <div class="content">
        <h2>Payment Received</h2>
        <p>Hello {{.UserName}},</p>
        <p>We've received your payment. You're all set.</p>

        <div class="success">
            <div class="amount">{{.Currency}} {{.Amount}}</div>
        </div>

        <div class="info-box">
            <div class="info-row">
                <span class="info-label">Reference</span>
                <span class="info-value">{{.MerchantRef}}</span>
            </div>
            <div class="info-row">
                <span class="info-label">Gateway Reference</span>
                <span class="info-value">{{.ReferenceNumber}}</span>
            </div>
            <div class="info-row">
                <span class="info-label">Method</span>
                <span class="info-value">{{.Method}}</span>
            </div>
            <div class="info-row">
                <span class="info-label">Date</span>
                <span class="info-value">{{.Date}}</span>
            </div>
        </div>
    </div>
    <div class="footer">
        <p>&copy; 2026 ScootMe. All rights reserved.</p>
        <p>This is an automated message. Please do not reply to this email.</p>
    </div>
</body>
</html>
`
